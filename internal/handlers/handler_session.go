package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/middleware"
	"github.com/leavedesk/leavedesk/internal/session"
)

// sessionHandler manages page-session lifecycle and the push socket.
type sessionHandler struct {
	sessions *session.Manager
}

func newSessionHandler(m *session.Manager) *sessionHandler {
	return &sessionHandler{sessions: m}
}

// registerSessionRoutes registers session lifecycle routes on the v1 group
// and returns the per-session subgroup the view handlers mount on.
func registerSessionRoutes(rg *gin.RouterGroup, m *session.Manager) *gin.RouterGroup {
	h := newSessionHandler(m)

	rg.POST("/sessions", h.createSession)

	sess := rg.Group("/sessions/:sessionID")
	{
		sess.DELETE("", h.closeSession)
		sess.GET("/ws", h.serveSocket)
		sess.GET("/selection", h.getSelection)
		sess.POST("/clear-selection", h.clearSelection)
	}
	return sess
}

// createSession godoc
// @Summary Open a page session
// @Description Creates the server-side state backing one browser page: bus, coordinator and views
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.CreateSessionBody true "Mount scope"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid scope"
// @Security BearerAuth
// @Router /sessions [post]
func (h *sessionHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var body dto.CreateSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	switch body.Scope {
	case domain.ScopeMy, domain.ScopeTeam, domain.ScopeManagerTeam:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown calendar scope"})
		return
	}

	employeeID, ok := middleware.GetEmployeeIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Employee ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	s := h.sessions.Create(employeeID, body.Scope)
	c.JSON(http.StatusCreated, dto.SessionResponse{
		SessionID:  s.ID,
		EmployeeID: s.EmployeeID,
		Scope:      body.Scope,
	})
}

func (h *sessionHandler) closeSession(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	h.sessions.Close(s.ID)
	c.Status(http.StatusNoContent)
}

// serveSocket upgrades to the websocket that carries toast notifications.
func (h *sessionHandler) serveSocket(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	s.Push.Serve(c)
}

// getSelection returns the coordinator state: which pane is active and
// which record is selected, if any.
func (h *sessionHandler) getSelection(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out gin.H
	s.Do(func() {
		out = gin.H{
			"activeTab": s.Coordinator.ActiveTab(),
			"selection": s.Coordinator.Selection(),
			"scope":     s.Coordinator.Scope(),
		}
	})
	c.JSON(http.StatusOK, out)
}

// clearSelection drops the stored selection by publishing the calendar
// context for the current scope, exactly as a tab switch would.
func (h *sessionHandler) clearSelection(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	s.Do(func() {
		s.Bus.CalendarContext.Publish(ctx, busCalendarContext(dto.CalendarContextBody{
			Scope: s.Coordinator.Scope(),
		}))
	})
	middleware.GetLoggerFromCtx(ctx).Debug("Selection cleared",
		slog.String("session_id", s.ID))
	c.Status(http.StatusNoContent)
}
