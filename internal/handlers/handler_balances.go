package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type balancesState struct {
	Rows      []views.BalanceRow   `json:"rows"`
	Filters   views.BalanceFilters `json:"filters"`
	Loading   bool                 `json:"loading"`
	LoadError string               `json:"loadError,omitempty"`
}

// balancesHandler serves the HR balance grid and its audit commands.
type balancesHandler struct {
	sessions *session.Manager
}

func registerBalanceRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &balancesHandler{sessions: m}

	g := sess.Group("/hr/balances")
	{
		g.GET("", h.getState)
		g.POST("/refresh", h.refresh)
		g.PUT("/filters", h.setFilters)
		g.DELETE("/filters", h.clearFilters)
		g.POST("/:balanceID/correct", rateLimit, h.correct)
		g.POST("/:balanceID/delete", rateLimit, h.delete)
	}
}

func (h *balancesHandler) state(s *session.Session) balancesState {
	return balancesState{
		Rows:      s.HRBalances.Rows(),
		Filters:   s.HRBalances.Filters(),
		Loading:   s.HRBalances.Loading(),
		LoadError: s.HRBalances.LoadError(),
	}
}

func (h *balancesHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out balancesState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

func (h *balancesHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out balancesState
	s.Do(func() {
		_ = s.HRBalances.Refresh(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *balancesHandler) setFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var filters views.BalanceFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var out balancesState
	s.Do(func() {
		s.HRBalances.SetFilters(filters)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *balancesHandler) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out balancesState
	s.Do(func() {
		s.HRBalances.ClearFilters()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

// correct godoc
// @Summary Correct a balance allocation
// @Description HR correction of the allocated days; the justification becomes an audit-trail movement
// @Tags hr-balances
// @Accept json
// @Produce json
// @Param balanceID path string true "Balance ID"
// @Param body body dto.CorrectBalanceBody true "New allocation and justification"
// @Success 200 {object} balancesState
// @Failure 400 {object} map[string]string "Missing justification or non-correctable type"
// @Failure 409 {object} map[string]string "Confirmation required"
// @Security BearerAuth
// @Router /sessions/{sessionID}/hr/balances/{balanceID}/correct [post]
func (h *balancesHandler) correct(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body struct {
		dto.CorrectBalanceBody
		Confirmed bool `json:"confirmed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    balancesState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.HRBalances.Correct(ctx, c.Param("balanceID"),
			body.AllocatedDays, body.Justification, body.Confirmed)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *balancesHandler) delete(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.DeleteBalanceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    balancesState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.HRBalances.Delete(ctx, c.Param("balanceID"), body.Justification, body.Confirmed)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}
