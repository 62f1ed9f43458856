package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// Event colors, matching the palette of the datefull calendar widget.
const (
	leaveEventColor    = "#0070d2"
	holidayEventColor  = "#e39139"
	selectedEventColor = "#8e44ad"
)

// CalendarEvent is one visual event on the calendar. End follows the
// exclusive-end convention of calendar widgets: it is the day *after* the
// last day of leave.
type CalendarEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Start       domain.Date `json:"start"`
	End         domain.Date `json:"end"`
	AllDay      bool        `json:"allDay"`
	Color       string      `json:"color"`
	Highlighted bool        `json:"highlighted,omitempty"`
}

// CalendarView maintains the current calendar scope and rebuilds the full
// event set from scratch whenever the scope, the leave collection or the
// holiday collection changes. No incremental diffing.
type CalendarView struct {
	leaves   ports.LeaveQueries
	holidays ports.HolidayQueries
	bus      *bus.Bus
	logger   *slog.Logger

	scope             domain.CalendarScope
	managerID         string
	selectedRequestID string
	requests          []domain.LeaveRequest
	holidayList       []domain.Holiday
	loadError         string
	closed            bool
	unsubs            []func()
}

// NewCalendarView wires the calendar to the session bus. It reacts to
// CalendarContext scope switches and to DataModified invalidation.
func NewCalendarView(lq ports.LeaveQueries, hq ports.HolidayQueries, b *bus.Bus, initialScope domain.CalendarScope, logger *slog.Logger) *CalendarView {
	v := &CalendarView{leaves: lq, holidays: hq, bus: b, scope: initialScope, logger: logger}
	subContext := b.CalendarContext.Subscribe(func(ctx context.Context, msg bus.CalendarContext) {
		v.handleContextChange(ctx, msg)
	})
	subModified := b.DataModified.Subscribe(func(ctx context.Context, _ bus.DataModified) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs,
		func() { b.CalendarContext.Unsubscribe(subContext) },
		func() { b.DataModified.Unsubscribe(subModified) },
	)
	return v
}

// Close detaches the calendar from the bus.
func (v *CalendarView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

func (v *CalendarView) handleContextChange(ctx context.Context, msg bus.CalendarContext) {
	if msg.Scope == "" {
		return
	}
	v.scope = msg.Scope
	v.managerID = msg.ManagerID
	v.selectedRequestID = msg.SelectedRequestID
	_ = v.Refresh(ctx)
}

// Refresh re-fetches the leave collection for the current scope. Holidays
// are fetched separately via RefreshHolidays since they change rarely.
func (v *CalendarView) Refresh(ctx context.Context) error {
	data, err := v.fetchForScope(ctx)
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading calendar data."
		v.logger.ErrorContext(ctx, "calendar fetch failed",
			slog.String("scope", string(v.scope)),
			slog.String("error", err.Error()))
		return err
	}
	v.requests = data
	v.loadError = ""
	return nil
}

// RefreshHolidays re-fetches the holiday overlay for all countries.
func (v *CalendarView) RefreshHolidays(ctx context.Context) error {
	data, err := v.holidays.Holidays(ctx, "", 0)
	if v.closed {
		return nil
	}
	if err != nil {
		v.logger.ErrorContext(ctx, "holiday fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.holidayList = data
	return nil
}

func (v *CalendarView) fetchForScope(ctx context.Context) ([]domain.LeaveRequest, error) {
	switch v.scope {
	case domain.ScopeTeam:
		return v.leaves.TeamRequests(ctx)
	case domain.ScopeManagerTeam:
		return v.leaves.ManagerTeamRequests(ctx, v.managerID)
	default:
		return v.leaves.MyRequests(ctx)
	}
}

// Scope returns the scope currently displayed.
func (v *CalendarView) Scope() domain.CalendarScope { return v.scope }

// LoadError returns the inline error text of the last leave fetch.
func (v *CalendarView) LoadError() string { return v.loadError }

// Events rebuilds the full visual event set: approved requests (plus
// cancellation-requested ones in team scopes) as date-range events,
// holidays as single-day events, and in the managerTeam scope a
// distinguishable highlighted event for the selected request when the
// displayable set does not already cover it.
func (v *CalendarView) Events() []CalendarEvent {
	events := make([]CalendarEvent, 0, len(v.requests)+len(v.holidayList))

	covered := map[string]bool{}
	for _, r := range v.requests {
		if !v.displayable(r.Status) {
			continue
		}
		covered[r.ID] = true
		events = append(events, CalendarEvent{
			ID:    r.ID,
			Title: v.titleFor(r),
			Start: r.StartDate,
			// The gateway's end date is the last inclusive day; the
			// widget treats end as exclusive, hence the +1.
			End:    r.EndDate.AddDays(1),
			AllDay: true,
			Color:  leaveEventColor,
		})
	}

	if v.scope == domain.ScopeManagerTeam && v.selectedRequestID != "" && !covered[v.selectedRequestID] {
		if r, ok := v.find(v.selectedRequestID); ok {
			events = append(events, CalendarEvent{
				ID:          r.ID,
				Title:       v.titleFor(r),
				Start:       r.StartDate,
				End:         r.EndDate.AddDays(1),
				AllDay:      true,
				Color:       selectedEventColor,
				Highlighted: true,
			})
		}
	}

	for _, h := range v.holidayList {
		events = append(events, CalendarEvent{
			ID:     h.ID,
			Title:  h.Name,
			Start:  h.Date,
			End:    h.Date.AddDays(1),
			AllDay: true,
			Color:  holidayEventColor,
		})
	}
	return events
}

func (v *CalendarView) displayable(s domain.LeaveStatus) bool {
	if s == domain.StatusApproved {
		return true
	}
	// Team scopes also surface requests whose cancellation is pending,
	// since the absence is still effective until HR decides.
	if s == domain.StatusCancellationRequested {
		return v.scope == domain.ScopeTeam || v.scope == domain.ScopeManagerTeam
	}
	return false
}

// titleFor omits the requester name in the personal scope and prefixes it
// in team scopes.
func (v *CalendarView) titleFor(r domain.LeaveRequest) string {
	if v.scope == domain.ScopeMy {
		return fmt.Sprintf("%s : %s", r.Number, r.Type)
	}
	name := r.RequesterName
	if name == "" {
		name = "Team"
	}
	return fmt.Sprintf("%s : %s", name, r.Type)
}

func (v *CalendarView) find(recordID string) (domain.LeaveRequest, bool) {
	for _, r := range v.requests {
		if r.ID == recordID {
			return r, true
		}
	}
	return domain.LeaveRequest{}, false
}
