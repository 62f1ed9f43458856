package views

import (
	"context"
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
	"github.com/leavedesk/leavedesk/internal/utils/pagination"
)

// DefaultLogPageSize bounds one page of the treated-requests log.
const DefaultLogPageSize = 25

// TreatedLogView backs the full team request history: every treated and
// untreated request of the manager's team, read-only except for selection,
// with the five-field filter set and cursor pagination.
type TreatedLogView struct {
	queries ports.LeaveQueries
	bus     *bus.Bus
	logger  *slog.Logger

	requests  []domain.LeaveRequest
	filters   RequestFilters
	loading   bool
	loadError string
	closed    bool
	unsubs    []func()
}

// LogPage is one page of the treated log plus the cursor for the next one.
type LogPage struct {
	Rows      []RequestRow `json:"rows"`
	NextToken string       `json:"nextToken,omitempty"`
}

// NewTreatedLogView wires the view to the session bus.
func NewTreatedLogView(q ports.LeaveQueries, b *bus.Bus, logger *slog.Logger) *TreatedLogView {
	v := &TreatedLogView{queries: q, bus: b, logger: logger}
	subModified := b.DataModified.Subscribe(func(ctx context.Context, _ bus.DataModified) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs, func() { b.DataModified.Unsubscribe(subModified) })
	return v
}

// Close detaches the view from the bus.
func (v *TreatedLogView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the full log, keeping the last-good collection on
// failure.
func (v *TreatedLogView) Refresh(ctx context.Context) error {
	v.loading = true
	data, err := v.queries.TeamRequestsLog(ctx)
	v.loading = false
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading request history."
		v.logger.ErrorContext(ctx, "team requests log fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.requests = data
	v.loadError = ""
	return nil
}

func (v *TreatedLogView) Filters() RequestFilters     { return v.filters }
func (v *TreatedLogView) SetFilters(f RequestFilters) { v.filters = f }
func (v *TreatedLogView) ClearFilters()               { v.filters = RequestFilters{} }
func (v *TreatedLogView) Loading() bool               { return v.loading }
func (v *TreatedLogView) LoadError() string           { return v.loadError }

// Select publishes the clicked record with the team origin.
func (v *TreatedLogView) Select(ctx context.Context, recordID string) {
	v.bus.RequestSelected.Publish(ctx, bus.RequestSelected{
		RecordID: recordID,
		Origin:   domain.OriginTeamRequest,
	})
}

// Page returns one page of the filtered log. The token is the opaque
// cursor returned by a previous call; an empty token starts from the top.
// The cursor encodes (start date, record id) of the last row served, so a
// page survives rows being inserted above it between calls.
func (v *TreatedLogView) Page(token string, limit int) (LogPage, error) {
	if limit <= 0 {
		limit = DefaultLogPageSize
	}
	filtered := v.filters.Apply(v.requests)

	start := 0
	if token != "" {
		fields, err := pagination.DecodeToken(token, 2)
		if err != nil {
			return LogPage{}, err
		}
		cursorDate, cursorID := domain.Date(fields[0]), fields[1]
		for i, r := range filtered {
			if r.StartDate == cursorDate && r.ID == cursorID {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page := LogPage{Rows: buildRows(filtered[start:end])}
	if end < len(filtered) && end > start {
		last := filtered[end-1]
		page.NextToken = pagination.EncodeToken(string(last.StartDate), last.ID)
	}
	return page, nil
}
