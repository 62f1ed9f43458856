package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/session"
)

// dashboardHandler serves the manager's pending-work tiles and the
// employee's per-type balance cards.
type dashboardHandler struct {
	sessions *session.Manager
}

func registerDashboardRoutes(sess *gin.RouterGroup, m *session.Manager) {
	h := &dashboardHandler{sessions: m}

	g := sess.Group("/dashboard")
	{
		g.GET("/team", h.getTeamTiles)
		g.POST("/team/refresh", h.refreshTeamTiles)
		g.GET("/balances", h.getBalanceTiles)
		g.POST("/balances/refresh", h.refreshBalanceTiles)
	}
}

type teamTilesState struct {
	Tiles     []views.StatusTile `json:"tiles"`
	LoadError string             `json:"loadError,omitempty"`
}

type balanceTilesState struct {
	Tiles     []views.BalanceTile `json:"tiles"`
	LoadError string              `json:"loadError,omitempty"`
}

func (h *dashboardHandler) getTeamTiles(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out teamTilesState
	s.Do(func() {
		out = teamTilesState{Tiles: s.TeamDashboard.Tiles(), LoadError: s.TeamDashboard.LoadError()}
	})
	c.JSON(http.StatusOK, out)
}

func (h *dashboardHandler) refreshTeamTiles(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out teamTilesState
	s.Do(func() {
		_ = s.TeamDashboard.Refresh(ctx)
		out = teamTilesState{Tiles: s.TeamDashboard.Tiles(), LoadError: s.TeamDashboard.LoadError()}
	})
	c.JSON(http.StatusOK, out)
}

func (h *dashboardHandler) getBalanceTiles(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out balanceTilesState
	s.Do(func() {
		out = balanceTilesState{Tiles: s.BalanceOverview.Tiles(), LoadError: s.BalanceOverview.LoadError()}
	})
	c.JSON(http.StatusOK, out)
}

func (h *dashboardHandler) refreshBalanceTiles(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out balanceTilesState
	s.Do(func() {
		_ = s.BalanceOverview.Refresh(ctx)
		out = balanceTilesState{Tiles: s.BalanceOverview.Tiles(), LoadError: s.BalanceOverview.LoadError()}
	})
	c.JSON(http.StatusOK, out)
}
