// Package handlers exposes the page-session views over HTTP. Every
// endpoint resolves the caller's session, runs the view interaction under
// the session lock, and renders the resulting view state. Handlers never
// hold state of their own.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/middleware"
	"github.com/leavedesk/leavedesk/internal/session"
)

// resolveSession looks up the session from the path and checks that it
// belongs to the authenticated caller.
func resolveSession(c *gin.Context, m *session.Manager) (*session.Session, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	s, err := m.Get(c.Param("sessionID"))
	if err != nil {
		logger.Warn("Unknown session", slog.String("session_id", c.Param("sessionID")))
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
		return nil, false
	}

	if employeeID, ok := middleware.GetEmployeeIDFromCtx(c.Request.Context()); !ok || employeeID != s.EmployeeID {
		logger.Warn("Session ownership mismatch", slog.String("session_id", s.ID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Session belongs to another user"})
		return nil, false
	}
	return s, true
}

// respondViewError maps a view interaction error to an HTTP response. A
// pending confirmation is not a failure: the prompt goes back to the
// browser so it can re-dispatch the command with confirmed=true.
func respondViewError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{
			"confirmationRequired": true,
			"prompt":               confirmationPrompt(err),
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.MessageFor(err)})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.MessageFor(err)})
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		logger.Error("Gateway unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "The leave service is unreachable. Please try again."})
	default:
		var ge *apperrors.GatewayError
		if errors.As(err, &ge) {
			c.JSON(http.StatusBadGateway, gin.H{"error": ge.UserMessage()})
			return
		}
		logger.Error("View interaction failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// confirmationPrompt strips the sentinel suffix so only the user-facing
// question travels to the browser.
func confirmationPrompt(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+apperrors.ErrConfirmationRequired.Error())
}
