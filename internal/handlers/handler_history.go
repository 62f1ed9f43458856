package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/session"
)

type historyState struct {
	Rows      []views.MovementRow   `json:"rows"`
	Filters   views.MovementFilters `json:"filters"`
	Loading   bool                  `json:"loading"`
	LoadError string                `json:"loadError,omitempty"`
}

// historyHandler serves both movement trails: the caller's own and the
// org-wide one on the HR screen. Both render the same state shape.
type historyHandler struct {
	sessions *session.Manager
}

func registerHistoryRoutes(sess *gin.RouterGroup, m *session.Manager) {
	h := &historyHandler{sessions: m}

	my := sess.Group("/balance-history")
	{
		my.GET("", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.MyHistory }).getState)
		my.POST("/refresh", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.MyHistory }).refresh)
		my.PUT("/filters", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.MyHistory }).setFilters)
		my.DELETE("/filters", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.MyHistory }).clearFilters)
	}

	hr := sess.Group("/hr/balance-history")
	{
		hr.GET("", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.HRHistory }).getState)
		hr.POST("/refresh", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.HRHistory }).refresh)
		hr.PUT("/filters", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.HRHistory }).setFilters)
		hr.DELETE("/filters", h.viewEndpoint(func(s *session.Session) *views.BalanceHistoryView { return s.HRHistory }).clearFilters)
	}
}

// historyEndpoints binds the shared endpoint logic to one of the two trail
// views of a session.
type historyEndpoints struct {
	sessions *session.Manager
	pick     func(*session.Session) *views.BalanceHistoryView
}

func (h *historyHandler) viewEndpoint(pick func(*session.Session) *views.BalanceHistoryView) historyEndpoints {
	return historyEndpoints{sessions: h.sessions, pick: pick}
}

func (e historyEndpoints) state(v *views.BalanceHistoryView) historyState {
	return historyState{
		Rows:      v.Rows(),
		Filters:   v.Filters(),
		Loading:   v.Loading(),
		LoadError: v.LoadError(),
	}
}

func (e historyEndpoints) getState(c *gin.Context) {
	s, ok := resolveSession(c, e.sessions)
	if !ok {
		return
	}
	var out historyState
	s.Do(func() { out = e.state(e.pick(s)) })
	c.JSON(http.StatusOK, out)
}

func (e historyEndpoints) refresh(c *gin.Context) {
	s, ok := resolveSession(c, e.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out historyState
	s.Do(func() {
		v := e.pick(s)
		_ = v.Refresh(ctx)
		out = e.state(v)
	})
	c.JSON(http.StatusOK, out)
}

func (e historyEndpoints) setFilters(c *gin.Context) {
	s, ok := resolveSession(c, e.sessions)
	if !ok {
		return
	}
	var filters views.MovementFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var out historyState
	s.Do(func() {
		v := e.pick(s)
		v.SetFilters(filters)
		out = e.state(v)
	})
	c.JSON(http.StatusOK, out)
}

func (e historyEndpoints) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, e.sessions)
	if !ok {
		return
	}
	var out historyState
	s.Do(func() {
		v := e.pick(s)
		v.ClearFilters()
		out = e.state(v)
	})
	c.JSON(http.StatusOK, out)
}
