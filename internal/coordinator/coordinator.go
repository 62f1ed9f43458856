// Package coordinator owns the shared "which record is selected, and from
// where" state of a tab container. It is the only application-wide mutable
// selection state; every other component observes it through the bus.
package coordinator

import (
	"context"
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// Tab is the active pane of the container.
type Tab string

const (
	TabCalendar Tab = "calendar"
	TabDetail   Tab = "detail"
)

// Coordinator reacts to selection and calendar-context messages:
//
//	calendar-active --RequestSelected--> detail-active (selection stored)
//	detail-active --CalendarContext--> calendar-active (selection cleared,
//	    ClearSelection published so row visuals reset)
//
// The initial state is calendar-active and there is no terminal state; the
// coordinator lives as long as the page session.
type Coordinator struct {
	bus    *bus.Bus
	logger *slog.Logger

	activeTab         Tab
	selection         *domain.Selection
	scope             domain.CalendarScope
	managerID         string
	selectedRequestID string

	subSelected bus.Subscription
	subCalendar bus.Subscription
}

// New wires a coordinator to the session bus. The initial scope is the
// container's mount context ("my" for the personal page, "team" for the
// manager page).
func New(b *bus.Bus, initialScope domain.CalendarScope, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		bus:       b,
		logger:    logger,
		activeTab: TabCalendar,
		scope:     initialScope,
	}
	c.subSelected = b.RequestSelected.Subscribe(c.onRequestSelected)
	c.subCalendar = b.CalendarContext.Subscribe(c.onCalendarContext)
	return c
}

// Close detaches the coordinator from the bus.
func (c *Coordinator) Close() {
	c.bus.RequestSelected.Unsubscribe(c.subSelected)
	c.bus.CalendarContext.Unsubscribe(c.subCalendar)
}

func (c *Coordinator) onRequestSelected(ctx context.Context, msg bus.RequestSelected) {
	c.selection = &domain.Selection{RecordID: msg.RecordID, Origin: msg.Origin}
	c.activeTab = TabDetail
	c.logger.DebugContext(ctx, "selection stored",
		slog.String("record_id", msg.RecordID),
		slog.String("origin", string(msg.Origin)))
}

func (c *Coordinator) onCalendarContext(ctx context.Context, msg bus.CalendarContext) {
	if msg.Scope == "" {
		return
	}
	c.scope = msg.Scope
	c.managerID = msg.ManagerID
	c.selectedRequestID = msg.SelectedRequestID
	c.selection = nil
	c.activeTab = TabCalendar
	// Underlying row-selection visuals must reset together with the
	// stored selection.
	c.bus.ClearSelection.Publish(ctx, bus.ClearSelection{})
}

// ActiveTab returns the currently active pane.
func (c *Coordinator) ActiveTab() Tab { return c.activeTab }

// Selection returns the stored selection, or nil when none is active.
func (c *Coordinator) Selection() *domain.Selection {
	if c.selection == nil {
		return nil
	}
	s := *c.selection
	return &s
}

// Scope returns the calendar scope the container currently displays.
func (c *Coordinator) Scope() domain.CalendarScope { return c.scope }

// ManagerID returns the manager whose team is displayed, for the
// managerTeam scope only.
func (c *Coordinator) ManagerID() string { return c.managerID }

// SelectedRequestID returns the request the calendar should highlight.
func (c *Coordinator) SelectedRequestID() string { return c.selectedRequestID }
