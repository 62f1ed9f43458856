package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/session"
)

type absencesState struct {
	Rows      []views.AbsenceRow   `json:"rows"`
	Filters   views.AbsenceFilters `json:"filters"`
	LoadError string               `json:"loadError,omitempty"`
}

type absencesHandler struct {
	sessions *session.Manager
}

func registerAbsenceRoutes(sess *gin.RouterGroup, m *session.Manager) {
	h := &absencesHandler{sessions: m}

	g := sess.Group("/hr/absences")
	{
		g.GET("", h.getState)
		g.POST("/refresh", h.refresh)
		g.PUT("/filters", h.setFilters)
		g.DELETE("/filters", h.clearFilters)
		g.GET("/export", h.exportPDF)
	}
}

func (h *absencesHandler) state(s *session.Session) absencesState {
	return absencesState{
		Rows:      s.HRAbsences.Rows(),
		Filters:   s.HRAbsences.Filters(),
		LoadError: s.HRAbsences.LoadError(),
	}
}

func (h *absencesHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out absencesState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

func (h *absencesHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out absencesState
	s.Do(func() {
		_ = s.HRAbsences.Refresh(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *absencesHandler) setFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var filters views.AbsenceFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var out absencesState
	s.Do(func() {
		s.HRAbsences.SetFilters(filters)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *absencesHandler) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out absencesState
	s.Do(func() {
		s.HRAbsences.ClearFilters()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

// exportPDF godoc
// @Summary Export the absence list as PDF
// @Tags hr-absences
// @Produce application/pdf
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /sessions/{sessionID}/hr/absences/export [get]
func (h *absencesHandler) exportPDF(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var (
		pdf    []byte
		pdfErr error
	)
	s.Do(func() { pdf, pdfErr = s.HRAbsences.ExportPDF() })
	if pdfErr != nil {
		respondViewError(c, pdfErr)
		return
	}
	filename := fmt.Sprintf("absences-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
