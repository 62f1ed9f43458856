package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// TeamRequestsView backs the manager's approval queue: the team requests
// currently awaiting action, with approve/reject commands.
type TeamRequestsView struct {
	queries  ports.LeaveQueries
	commands ports.LeaveCommands
	bus      *bus.Bus
	notifier ports.Notifier
	logger   *slog.Logger

	requests     []domain.LeaveRequest
	filters      RequestFilters
	selectedRows []string
	loading      bool
	loadError    string
	closed       bool
	unsubs       []func()
}

// NewTeamRequestsView wires the view to the session bus.
func NewTeamRequestsView(q ports.LeaveQueries, c ports.LeaveCommands, b *bus.Bus, n ports.Notifier, logger *slog.Logger) *TeamRequestsView {
	v := &TeamRequestsView{queries: q, commands: c, bus: b, notifier: n, logger: logger}
	subClear := b.ClearSelection.Subscribe(func(ctx context.Context, _ bus.ClearSelection) {
		v.selectedRows = nil
	})
	subModified := b.DataModified.Subscribe(func(ctx context.Context, _ bus.DataModified) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs,
		func() { b.ClearSelection.Unsubscribe(subClear) },
		func() { b.DataModified.Unsubscribe(subModified) },
	)
	return v
}

// Close detaches the view from the bus.
func (v *TeamRequestsView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the approval queue, keeping the last-good collection
// on failure.
func (v *TeamRequestsView) Refresh(ctx context.Context) error {
	v.loading = true
	data, err := v.queries.TeamRequests(ctx)
	v.loading = false
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading team requests."
		v.logger.ErrorContext(ctx, "team requests fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.requests = data
	v.loadError = ""
	return nil
}

// HandleRefresh re-fetches and nudges the calendar to rebuild for the team
// scope.
func (v *TeamRequestsView) HandleRefresh(ctx context.Context) error {
	err := v.Refresh(ctx)
	v.bus.CalendarContext.Publish(ctx, bus.CalendarContext{Scope: domain.ScopeTeam})
	return err
}

// Rows returns the filtered queue with derived presentation.
func (v *TeamRequestsView) Rows() []RequestRow {
	return buildRows(v.filters.Apply(v.requests))
}

func (v *TeamRequestsView) Filters() RequestFilters     { return v.filters }
func (v *TeamRequestsView) SetFilters(f RequestFilters) { v.filters = f }
func (v *TeamRequestsView) ClearFilters()               { v.filters = RequestFilters{} }
func (v *TeamRequestsView) Loading() bool               { return v.loading }
func (v *TeamRequestsView) LoadError() string           { return v.loadError }
func (v *TeamRequestsView) SelectedRows() []string      { return v.selectedRows }

// Select publishes the selection with the team origin so the detail pane
// shows the approval actions.
func (v *TeamRequestsView) Select(ctx context.Context, recordID string) {
	v.selectedRows = []string{recordID}
	v.bus.RequestSelected.Publish(ctx, bus.RequestSelected{
		RecordID: recordID,
		Origin:   domain.OriginTeamRequest,
	})
}

// Approve approves a pending request after confirmation.
func (v *TeamRequestsView) Approve(ctx context.Context, recordID string, confirmed bool) error {
	row, ok := v.find(recordID)
	if !ok {
		return fmt.Errorf("request %s: %w", recordID, apperrors.ErrNotFound)
	}
	prompt := fmt.Sprintf("Approve request %s?", row.Number)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, "Request approved.", func() error {
		return v.commands.ApproveRequest(ctx, row.ID)
	})
}

// Reject rejects a pending request. When reasonRequired is set, an empty
// reason is a validation error and the command does not fire.
func (v *TeamRequestsView) Reject(ctx context.Context, recordID, reason, comment string, reasonRequired, confirmed bool) error {
	row, ok := v.find(recordID)
	if !ok {
		return fmt.Errorf("request %s: %w", recordID, apperrors.ErrNotFound)
	}
	if reasonRequired && reason == "" {
		return fmt.Errorf("rejection reason is required: %w", apperrors.ErrValidation)
	}
	prompt := fmt.Sprintf("Reject request %s?", row.Number)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, "Request rejected.", func() error {
		return v.commands.RejectRequest(ctx, row.ID, reason, comment, reasonRequired)
	})
}

func (v *TeamRequestsView) runCommand(ctx context.Context, successMsg string, cmd func() error) error {
	v.loading = true
	defer func() { v.loading = false }()

	if err := cmd(); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, successMsg)
	v.bus.DataModified.Publish(ctx, bus.DataModified{})
	v.bus.RefreshBalance.Publish(ctx, bus.RefreshBalance{})
	return nil
}

func (v *TeamRequestsView) find(recordID string) (domain.LeaveRequest, bool) {
	for _, r := range v.requests {
		if r.ID == recordID {
			return r, true
		}
	}
	return domain.LeaveRequest{}, false
}
