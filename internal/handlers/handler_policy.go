package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

type policyState struct {
	Settings  *domain.PolicySettings `json:"settings"`
	Draft     domain.PolicySettings  `json:"draft"`
	Editing   bool                   `json:"editing"`
	Saving    bool                   `json:"saving"`
	LoadError string                 `json:"loadError,omitempty"`
}

type policyHandler struct {
	sessions *session.Manager
}

func registerPolicyRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &policyHandler{sessions: m}

	g := sess.Group("/hr/policy")
	{
		g.GET("", h.getState)
		g.POST("/refresh", h.refresh)
		g.POST("/edit", h.startEdit)
		g.PUT("/draft", h.setDraft)
		g.POST("/cancel-edit", h.cancelEdit)
		g.POST("/save", rateLimit, h.save)
	}
}

func (h *policyHandler) state(s *session.Session) policyState {
	return policyState{
		Settings:  s.Policy.Settings(),
		Draft:     s.Policy.Draft(),
		Editing:   s.Policy.Editing(),
		Saving:    s.Policy.Saving(),
		LoadError: s.Policy.LoadError(),
	}
}

func (h *policyHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out policyState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

func (h *policyHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out policyState
	s.Do(func() {
		_ = s.Policy.Refresh(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *policyHandler) startEdit(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var (
		out   policyState
		opErr error
	)
	s.Do(func() {
		opErr = s.Policy.StartEdit()
		out = h.state(s)
	})
	if opErr != nil {
		respondViewError(c, opErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *policyHandler) setDraft(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.SavePolicySettingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var out policyState
	s.Do(func() {
		s.Policy.SetDraft(domain.PolicySettings{AnnualPaidLeaveDays: body.AnnualPaidLeaveDays})
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *policyHandler) cancelEdit(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out policyState
	s.Do(func() {
		s.Policy.CancelEdit()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *policyHandler) save(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		out    policyState
		cmdErr error
	)
	s.Do(func() {
		cmdErr = s.Policy.Save(ctx)
		out = h.state(s)
	})
	if cmdErr != nil {
		respondViewError(c, cmdErr)
		return
	}
	c.JSON(http.StatusOK, out)
}
