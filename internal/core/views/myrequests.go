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

// MyRequestsView backs the "My Requests" table: the authenticated user's
// own leave requests with per-row actions derived from status.
type MyRequestsView struct {
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

// NewMyRequestsView wires the view to the session bus. It re-fetches on
// DataModified and clears its visual row selection on ClearSelection.
func NewMyRequestsView(q ports.LeaveQueries, c ports.LeaveCommands, b *bus.Bus, n ports.Notifier, logger *slog.Logger) *MyRequestsView {
	v := &MyRequestsView{queries: q, commands: c, bus: b, notifier: n, logger: logger}
	subClear := b.ClearSelection.Subscribe(func(ctx context.Context, _ bus.ClearSelection) {
		v.selectedRows = nil
	})
	subModified := b.DataModified.Subscribe(func(ctx context.Context, _ bus.DataModified) {
		// A refresh may arrive while a previous fetch is outstanding;
		// re-fetching again is always safe.
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs,
		func() { b.ClearSelection.Unsubscribe(subClear) },
		func() { b.DataModified.Unsubscribe(subModified) },
	)
	return v
}

// Close detaches the view from the bus and discards late fetch results.
func (v *MyRequestsView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the collection from the gateway. On failure the
// last-good collection is kept and the error is exposed as inline view
// state; sibling views are unaffected.
func (v *MyRequestsView) Refresh(ctx context.Context) error {
	v.loading = true
	data, err := v.queries.MyRequests(ctx)
	v.loading = false
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading requests."
		v.logger.ErrorContext(ctx, "my requests fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.requests = data
	v.loadError = ""
	return nil
}

// HandleRefresh is the explicit refresh button: re-fetch, then nudge the
// calendar to rebuild for the personal scope.
func (v *MyRequestsView) HandleRefresh(ctx context.Context) error {
	err := v.Refresh(ctx)
	v.bus.CalendarContext.Publish(ctx, bus.CalendarContext{Scope: domain.ScopeMy})
	return err
}

// Rows returns the filtered collection with derived presentation.
func (v *MyRequestsView) Rows() []RequestRow {
	return buildRows(v.filters.Apply(v.requests))
}

// Filters returns the current filter state.
func (v *MyRequestsView) Filters() RequestFilters { return v.filters }

// SetFilters replaces the filter state; filtering is client-side only.
func (v *MyRequestsView) SetFilters(f RequestFilters) { v.filters = f }

// ClearFilters resets every filter field to its default.
func (v *MyRequestsView) ClearFilters() { v.filters = RequestFilters{} }

// Loading reports whether a fetch or command is in flight.
func (v *MyRequestsView) Loading() bool { return v.loading }

// LoadError returns the inline error text, empty when the last fetch
// succeeded.
func (v *MyRequestsView) LoadError() string { return v.loadError }

// SelectedRows returns the ids of visually selected rows.
func (v *MyRequestsView) SelectedRows() []string { return v.selectedRows }

// Select publishes the selection so the detail pane opens, and marks the
// row visually selected.
func (v *MyRequestsView) Select(ctx context.Context, recordID string) {
	v.selectedRows = []string{recordID}
	v.bus.RequestSelected.Publish(ctx, bus.RequestSelected{
		RecordID: recordID,
		Origin:   domain.OriginMyRequest,
	})
}

// HandleAction dispatches a row action by name. Actions not offered for
// the row's current status are rejected.
func (v *MyRequestsView) HandleAction(ctx context.Context, action RowAction, recordID string, confirmed bool) error {
	row, ok := v.find(recordID)
	if !ok {
		return fmt.Errorf("request %s: %w", recordID, apperrors.ErrNotFound)
	}
	if !DeriveRowPresentation(row).HasAction(action) {
		return fmt.Errorf("action %q not available for status %q: %w", action, row.Status, apperrors.ErrValidation)
	}
	switch action {
	case ActionShowDetails:
		v.Select(ctx, recordID)
		return nil
	case ActionEdit:
		// The browser opens the editor; nothing to dispatch here.
		return nil
	case ActionCancel:
		return v.cancel(ctx, row, confirmed)
	case ActionRequestCancellation:
		return v.requestCancellation(ctx, row, confirmed)
	case ActionWithdrawCancel:
		return v.withdrawCancellation(ctx, row, confirmed)
	default:
		return fmt.Errorf("unknown action %q: %w", action, apperrors.ErrValidation)
	}
}

func (v *MyRequestsView) cancel(ctx context.Context, row domain.LeaveRequest, confirmed bool) error {
	prompt := fmt.Sprintf("Are you sure you want to cancel request %s?", row.Number)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, func() (string, error) {
		return v.commands.CancelRequest(ctx, row.ID)
	})
}

func (v *MyRequestsView) requestCancellation(ctx context.Context, row domain.LeaveRequest, confirmed bool) error {
	prompt := fmt.Sprintf("Are you sure you want to request cancellation for %s?", row.Number)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, func() (string, error) {
		return "Cancellation request submitted.", v.commands.RequestCancellation(ctx, row.ID)
	})
}

func (v *MyRequestsView) withdrawCancellation(ctx context.Context, row domain.LeaveRequest, confirmed bool) error {
	prompt := fmt.Sprintf("Are you sure you want to withdraw the cancellation request for %s?", row.Number)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, func() (string, error) {
		return "Cancellation request withdrawn.", v.commands.WithdrawCancellation(ctx, row.ID)
	})
}

// runCommand is the standard destructive-command flow: loading flag on,
// invoke, notify success or surface the server message, then let the bus
// drive the authoritative re-fetch everywhere. The loading flag is cleared
// on both paths and local state is never mutated optimistically.
func (v *MyRequestsView) runCommand(ctx context.Context, cmd func() (string, error)) error {
	v.loading = true
	defer func() { v.loading = false }()

	message, err := cmd()
	if err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, message)
	v.bus.DataModified.Publish(ctx, bus.DataModified{})
	v.bus.RefreshBalance.Publish(ctx, bus.RefreshBalance{})
	return nil
}

func (v *MyRequestsView) find(recordID string) (domain.LeaveRequest, bool) {
	for _, r := range v.requests {
		if r.ID == recordID {
			return r, true
		}
	}
	return domain.LeaveRequest{}, false
}
