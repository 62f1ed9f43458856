package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type editorState struct {
	Open             bool                 `json:"open"`
	Mode             views.EditorMode     `json:"mode"`
	Step             views.EditorStep     `json:"step"`
	Draft            dto.SaveLeaveRequest `json:"draft"`
	DerivedDays      decimal.Decimal      `json:"derivedDays"`
	DocumentRequired bool                 `json:"documentRequired"`
	Saving           bool                 `json:"saving"`
}

type editorHandler struct {
	sessions *session.Manager
}

func registerEditorRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &editorHandler{sessions: m}

	g := sess.Group("/editor")
	{
		g.GET("", h.getState)
		g.POST("/open-create", h.openCreate)
		g.POST("/open-edit", h.openEdit)
		g.POST("/cancel", h.cancel)
		g.PUT("/draft", h.setDraft)
		g.POST("/save", rateLimit, h.save)
		g.POST("/finish-upload", rateLimit, h.finishUpload)
		g.POST("/skip-upload", h.skipUpload)
	}
}

func (h *editorHandler) state(s *session.Session) editorState {
	return editorState{
		Open:             s.Editor.Open(),
		Mode:             s.Editor.Mode(),
		Step:             s.Editor.Step(),
		Draft:            s.Editor.Draft(),
		DerivedDays:      s.Editor.DerivedDays(),
		DocumentRequired: s.Editor.DocumentRequired(),
		Saving:           s.Editor.Saving(),
	}
}

func (h *editorHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out editorState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

func (h *editorHandler) openCreate(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out editorState
	s.Do(func() {
		s.Editor.OpenCreate()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

// openEdit godoc
// @Summary Open the editor on an existing request
// @Description Loads the request fresh from the gateway; only requests still in the approval pipeline can be edited
// @Tags editor
// @Accept json
// @Produce json
// @Param body body dto.OpenEditBody true "Request to edit"
// @Success 200 {object} editorState
// @Failure 400 {object} map[string]string "Request is no longer editable"
// @Security BearerAuth
// @Router /sessions/{sessionID}/editor/open-edit [post]
func (h *editorHandler) openEdit(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.OpenEditBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out   editorState
		opErr error
	)
	s.Do(func() {
		opErr = s.Editor.OpenEdit(ctx, body.RecordID)
		out = h.state(s)
	})
	if opErr != nil {
		respondViewError(c, opErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *editorHandler) cancel(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out editorState
	s.Do(func() {
		s.Editor.Cancel()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

// setDraft applies the typed fields and recomputes the derived day count.
// A day-count failure is soft: the draft sticks and the count reads zero.
func (h *editorHandler) setDraft(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.EditorDraftBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var out editorState
	s.Do(func() {
		s.Editor.SetType(body.Type)
		s.Editor.SetComment(body.EmployeeComment)
		_ = s.Editor.SetDates(ctx, body.StartDate, body.EndDate)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *editorHandler) save(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		out    editorState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.Editor.Save(ctx)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *editorHandler) finishUpload(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		out    editorState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.Editor.FinishUpload(ctx)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *editorHandler) skipUpload(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out editorState
	s.Do(func() {
		s.Editor.SkipUpload(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}
