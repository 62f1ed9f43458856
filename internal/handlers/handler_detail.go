package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/session"
)

type detailState struct {
	Record       *domain.LeaveRequest   `json:"record"`
	Files        []domain.RelatedFile   `json:"files"`
	Origin       domain.SelectionOrigin `json:"origin"`
	Presentation views.RowPresentation  `json:"presentation"`
	LoadError    string                 `json:"loadError,omitempty"`
}

type detailHandler struct {
	sessions *session.Manager
}

func registerDetailRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &detailHandler{sessions: m}

	g := sess.Group("/detail")
	{
		g.GET("", h.getState)
		g.DELETE("/files/:fileID", rateLimit, h.deleteFile)
	}
}

// getState godoc
// @Summary Current state of the detail pane
// @Tags detail
// @Produce json
// @Success 200 {object} detailState
// @Security BearerAuth
// @Router /sessions/{sessionID}/detail [get]
func (h *detailHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out detailState
	s.Do(func() {
		out = detailState{
			Record:       s.Detail.Record(),
			Files:        s.Detail.Files(),
			Origin:       s.Detail.Origin(),
			Presentation: s.Detail.Presentation(),
			LoadError:    s.Detail.LoadError(),
		}
	})
	c.JSON(http.StatusOK, out)
}

// deleteFile removes one attachment of the displayed request. Confirmation
// travels as a query flag since DELETE carries no body.
func (h *detailHandler) deleteFile(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirmed"))
	ctx := c.Request.Context()

	var cmdErr error
	s.Do(func() {
		cmdErr = s.Detail.DeleteFile(ctx, c.Param("fileID"), confirmed)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.Status(http.StatusNoContent)
}
