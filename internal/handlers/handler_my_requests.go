package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/session"
)

// requestListState is the rendered state of a request table view.
type requestListState struct {
	Rows         []views.RequestRow   `json:"rows"`
	Filters      views.RequestFilters `json:"filters"`
	SelectedRows []string             `json:"selectedRows"`
	Loading      bool                 `json:"loading"`
	LoadError    string               `json:"loadError,omitempty"`
}

type myRequestsHandler struct {
	sessions *session.Manager
}

func registerMyRequestRoutes(sess *gin.RouterGroup, m *session.Manager, rateLimit gin.HandlerFunc) {
	h := &myRequestsHandler{sessions: m}

	g := sess.Group("/my-requests")
	{
		g.GET("", h.getState)
		g.POST("/refresh", h.refresh)
		g.PUT("/filters", h.setFilters)
		g.DELETE("/filters", h.clearFilters)
		g.POST("/select", h.selectRow)
		g.POST("/actions", rateLimit, h.dispatchAction)
	}
}

func (h *myRequestsHandler) state(s *session.Session) requestListState {
	return requestListState{
		Rows:         s.MyRequests.Rows(),
		Filters:      s.MyRequests.Filters(),
		SelectedRows: s.MyRequests.SelectedRows(),
		Loading:      s.MyRequests.Loading(),
		LoadError:    s.MyRequests.LoadError(),
	}
}

// getState godoc
// @Summary Current state of the my-requests table
// @Tags my-requests
// @Produce json
// @Success 200 {object} requestListState
// @Security BearerAuth
// @Router /sessions/{sessionID}/my-requests [get]
func (h *myRequestsHandler) getState(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out requestListState
	s.Do(func() { out = h.state(s) })
	c.JSON(http.StatusOK, out)
}

// refresh re-fetches the table. A fetch failure is inline view state, not
// an HTTP error; the last-good rows are still served.
func (h *myRequestsHandler) refresh(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var out requestListState
	s.Do(func() {
		_ = s.MyRequests.HandleRefresh(ctx)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *myRequestsHandler) setFilters(c *gin.Context) {
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
		s.MyRequests.SetFilters(filters)
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *myRequestsHandler) clearFilters(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var out requestListState
	s.Do(func() {
		s.MyRequests.ClearFilters()
		out = h.state(s)
	})
	c.JSON(http.StatusOK, out)
}

func (h *myRequestsHandler) selectRow(c *gin.Context) {
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
	s.Do(func() { s.MyRequests.Select(ctx, body.RecordID) })
	c.Status(http.StatusNoContent)
}

// dispatchAction godoc
// @Summary Dispatch a row action
// @Description Runs one of the actions offered on a request row (cancel, request cancellation, ...)
// @Tags my-requests
// @Accept json
// @Produce json
// @Param action body dto.RowActionBody true "Action to dispatch"
// @Success 200 {object} requestListState
// @Failure 400 {object} map[string]string "Action not available for the row's status"
// @Failure 409 {object} map[string]string "Confirmation required"
// @Security BearerAuth
// @Router /sessions/{sessionID}/my-requests/actions [post]
func (h *myRequestsHandler) dispatchAction(c *gin.Context) {
	s, ok := resolveSession(c, h.sessions)
	if !ok {
		return
	}
	var body dto.RowActionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var (
		out    requestListState
		actErr error
	)
	s.Do(func() {
		actErr = s.MyRequests.HandleAction(ctx, views.RowAction(body.Action), body.RecordID, body.Confirmed)
		out = h.state(s)
	})
	if actErr != nil {
		respondViewError(c, actErr)
		return
	}
	c.JSON(http.StatusOK, out)
}
