package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type calendarState struct {
	Scope     string                `json:"scope"`
	Events    []views.CalendarEvent `json:"events"`
	LoadError string                `json:"loadError,omitempty"`
}

type calendarHandler struct {
	sessions *session.Manager
}

func registerCalendarRoutes(sess *gin.RouterGroup, m *session.Manager) {
	h := &calendarHandler{sessions: m}

	g := sess.Group("/calendar")
	{
		g.GET("", h.getEvents)
		g.POST("/context", h.setContext)
		g.POST("/refresh", h.refresh)
		g.POST("/refresh-holidays", h.refreshHolidays)
	}
}

func busCalendarContext(body dto.CalendarContextBody) bus.CalendarContext {
	return bus.CalendarContext{
		Scope:             body.Scope,
		ManagerID:         body.ManagerID,
		SelectedRequestID: body.SelectedRequestID,
	}
}

// getEvents godoc
// @Summary Calendar events for the current scope
// @Tags calendar
// @Produce json
// @Success 200 {object} calendarState
// @Security BearerAuth
// @Router /sessions/{sessionID}/calendar [get]
func (h *calendarHandler) getEvents(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out calendarState
	s.Do(func() {
		out = calendarState{
			Scope:     string(s.Calendar.Scope()),
			Events:    s.Calendar.Events(),
			LoadError: s.Calendar.LoadError(),
		}
	})
	c.JSON(http.StatusOK, out)
}

// setContext publishes the scope switch on the bus; the coordinator and
// every subscribed view react in the same tick.
func (h *calendarHandler) setContext(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.CalendarContextBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var out calendarState
	s.Do(func() {
		s.Bus.CalendarContext.Publish(ctx, busCalendarContext(body))
		out = calendarState{
			Scope:     string(s.Calendar.Scope()),
			Events:    s.Calendar.Events(),
			LoadError: s.Calendar.LoadError(),
		}
	})
	c.JSON(http.StatusOK, out)
}

func (h *calendarHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out calendarState
	s.Do(func() {
		_ = s.Calendar.Refresh(ctx)
		out = calendarState{
			Scope:     string(s.Calendar.Scope()),
			Events:    s.Calendar.Events(),
			LoadError: s.Calendar.LoadError(),
		}
	})
	c.JSON(http.StatusOK, out)
}

// refreshHolidays re-fetches the holiday overlay, which changes rarely and
// is therefore not part of the regular refresh.
func (h *calendarHandler) refreshHolidays(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out calendarState
	s.Do(func() {
		_ = s.Calendar.RefreshHolidays(ctx)
		out = calendarState{
			Scope:     string(s.Calendar.Scope()),
			Events:    s.Calendar.Events(),
			LoadError: s.Calendar.LoadError(),
		}
	})
	c.JSON(http.StatusOK, out)
}
