package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type treatedLogHandler struct {
	sessions *session.Manager
}

func registerTreatedLogRoutes(sess *gin.RouterGroup, m *session.Manager) {
	h := &treatedLogHandler{sessions: m}

	g := sess.Group("/treated-log")
	{
		g.GET("", h.getPage)
		g.POST("/refresh", h.refresh)
		g.PUT("/filters", h.setFilters)
		g.DELETE("/filters", h.clearFilters)
		g.POST("/select", h.selectRow)
	}
}

// getPage godoc
// @Summary One page of the treated-requests log
// @Description Cursor-paginated team request history. Pass the nextToken of the previous page to continue.
// @Tags treated-log
// @Produce json
// @Param token query string false "Opaque page cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} views.LogPage
// @Failure 400 {object} map[string]string "Malformed cursor"
// @Security BearerAuth
// @Router /sessions/{sessionID}/treated-log [get]
func (h *treatedLogHandler) getPage(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	token := c.Query("token")

	var (
		page    views.LogPage
		pageErr error
	)
	s.Do(func() { page, pageErr = s.TreatedLog.Page(token, limit) })
	if pageErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page token"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *treatedLogHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out gin.H
	s.Do(func() {
		_ = s.TreatedLog.Refresh(ctx)
		out = gin.H{"loading": s.TreatedLog.Loading(), "loadError": s.TreatedLog.LoadError()}
	})
	c.JSON(http.StatusOK, out)
}

func (h *treatedLogHandler) setFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var filters views.RequestFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	s.Do(func() { s.TreatedLog.SetFilters(filters) })
	c.Status(http.StatusNoContent)
}

func (h *treatedLogHandler) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	s.Do(func() { s.TreatedLog.ClearFilters() })
	c.Status(http.StatusNoContent)
}

func (h *treatedLogHandler) selectRow(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.SelectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	s.Do(func() { s.TreatedLog.Select(ctx, body.RecordID) })
	c.Status(http.StatusNoContent)
}
