package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type holidaysState struct {
	Rows      []domain.Holiday     `json:"rows"`
	Countries []domain.Country     `json:"countries"`
	Filters   views.HolidayFilters `json:"filters"`
	Loading   bool                 `json:"loading"`
	LoadError string               `json:"loadError,omitempty"`
}

type holidaysHandler struct {
	sessions *session.Manager
}

func registerHolidayRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &holidaysHandler{sessions: m}

	g := sess.Group("/hr/holidays")
	{
		g.GET("", h.getState)
		g.POST("/refresh", h.refresh)
		g.PUT("/filters", h.setFilters)
		g.DELETE("/filters", h.clearFilters)
		g.POST("", rateLimit, h.save)
		g.DELETE("/:holidayID", rateLimit, h.delete)
		g.POST("/sync", rateLimit, h.sync)
		g.POST("/bulk-delete", rateLimit, h.bulkDelete)
	}
}

func (h *holidaysHandler) state(s *session.Session) holidaysState {
	return holidaysState{
		Rows:      s.HRHolidays.Rows(),
		Countries: s.HRHolidays.Countries(),
		Filters:   s.HRHolidays.Filters(),
		Loading:   s.HRHolidays.Loading(),
		LoadError: s.HRHolidays.LoadError(),
	}
}

func (h *holidaysHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out holidaysState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

func (h *holidaysHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out holidaysState
	s.Do(func() {
		_ = s.HRHolidays.Refresh(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *holidaysHandler) setFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var filters views.HolidayFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var out holidaysState
	s.Do(func() {
		s.HRHolidays.SetFilters(filters)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *holidaysHandler) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out holidaysState
	s.Do(func() {
		s.HRHolidays.ClearFilters()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

// save creates or updates one holiday; the view re-fetches its list before
// the response is rendered.
func (h *holidaysHandler) save(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.SaveHoliday
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    holidaysState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.HRHolidays.Save(ctx, body)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *holidaysHandler) delete(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirmed"))
	ctx := c.Request.Context()
	var (
		out    holidaysState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.HRHolidays.Delete(ctx, c.Param("holidayID"), confirmed)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

// sync godoc
// @Summary Trigger the holiday import
// @Description Starts the asynchronous import of public holidays for a country and year
// @Tags hr-holidays
// @Accept json
// @Produce json
// @Param body body dto.SyncHolidaysBody true "Country and year"
// @Success 202 {object} map[string]string
// @Security BearerAuth
// @Router /sessions/{sessionID}/hr/holidays/sync [post]
func (h *holidaysHandler) sync(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.SyncHolidaysBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var cmdErr error
	s.Do(func() { cmdErr = s.HRHolidays.Sync(ctx, body) })
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "import started"})
}

func (h *holidaysHandler) bulkDelete(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.BulkDeleteHolidaysBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    holidaysState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.HRHolidays.BulkDelete(ctx, body)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}
