package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type teamRequestsHandler struct {
	sessions *session.Manager
}

func registerTeamRequestRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &teamRequestsHandler{sessions: m}

	g := sess.Group("/team-requests")
	{
		g.GET("", h.getState)
		g.POST("/refresh", h.refresh)
		g.PUT("/filters", h.setFilters)
		g.DELETE("/filters", h.clearFilters)
		g.POST("/select", h.selectRow)
		g.POST("/:recordID/approve", rateLimit, h.approve)
		g.POST("/:recordID/reject", rateLimit, h.reject)
	}
}

func (h *teamRequestsHandler) state(s *session.Session) requestListState {
	return requestListState{
		Rows:         s.TeamRequests.Rows(),
		Filters:      s.TeamRequests.Filters(),
		SelectedRows: s.TeamRequests.SelectedRows(),
		Loading:      s.TeamRequests.Loading(),
		LoadError:    s.TeamRequests.LoadError(),
	}
}

func (h *teamRequestsHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out requestListState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

func (h *teamRequestsHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out requestListState
	s.Do(func() {
		_ = s.TeamRequests.HandleRefresh(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *teamRequestsHandler) setFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var filters views.RequestFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var out requestListState
	s.Do(func() {
		s.TeamRequests.SetFilters(filters)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *teamRequestsHandler) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out requestListState
	s.Do(func() {
		s.TeamRequests.ClearFilters()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *teamRequestsHandler) selectRow(c *gin.Context) {
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
	s.Do(func() { s.TeamRequests.Select(ctx, body.RecordID) })
	c.Status(http.StatusNoContent)
}

// approve godoc
// @Summary Approve a pending team request
// @Tags team-requests
// @Accept json
// @Produce json
// @Param recordID path string true "Request ID"
// @Param body body dto.ConfirmBody true "Confirmation flag"
// @Success 200 {object} requestListState
// @Failure 409 {object} map[string]string "Confirmation required"
// @Security BearerAuth
// @Router /sessions/{sessionID}/team-requests/{recordID}/approve [post]
func (h *teamRequestsHandler) approve(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.ConfirmBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    requestListState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.TeamRequests.Approve(ctx, c.Param("recordID"), body.Confirmed)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *teamRequestsHandler) reject(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body struct {
		dto.RejectRequestBody
		Confirmed bool `json:"confirmed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    requestListState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.TeamRequests.Reject(ctx, c.Param("recordID"),
			body.Reason, body.Comment, body.ReasonRequired, body.Confirmed)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}
