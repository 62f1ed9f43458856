package views

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// MovementRow is one audit-trail line with its display formatting applied.
type MovementRow struct {
	domain.BalanceMovement
	DisplayName string `json:"displayName"`
	// DaysDisplay carries the sign explicitly; credits read "+2", debits
	// "-1.5".
	DaysDisplay string `json:"daysDisplay"`
}

// BalanceHistoryView backs the movement audit trail. Scope "" shows the
// caller's own movements; ScopeAll the org-wide trail on the HR screen.
type BalanceHistoryView struct {
	queries ports.BalanceQueries
	logger  *slog.Logger

	scope     string
	movements []domain.BalanceMovement
	filters   MovementFilters
	loading   bool
	loadError string
	closed    bool
	unsubs    []func()
}

// ScopeAll requests the org-wide movement trail.
const ScopeAll = "all"

// NewBalanceHistoryView wires the trail to the session bus. It re-fetches
// whenever balances change.
func NewBalanceHistoryView(q ports.BalanceQueries, b *bus.Bus, scope string, logger *slog.Logger) *BalanceHistoryView {
	v := &BalanceHistoryView{queries: q, scope: scope, logger: logger}
	subBalance := b.RefreshBalance.Subscribe(func(ctx context.Context, _ bus.RefreshBalance) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs, func() { b.RefreshBalance.Unsubscribe(subBalance) })
	return v
}

// Close detaches the trail from the bus.
func (v *BalanceHistoryView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the movement trail for the view's scope.
func (v *BalanceHistoryView) Refresh(ctx context.Context) error {
	v.loading = true
	data, err := v.queries.BalanceHistory(ctx, v.scope)
	v.loading = false
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading balance history."
		v.logger.ErrorContext(ctx, "balance history fetch failed",
			slog.String("scope", v.scope),
			slog.String("error", err.Error()))
		return err
	}
	v.movements = data
	v.loadError = ""
	return nil
}

func (v *BalanceHistoryView) Filters() MovementFilters     { return v.filters }
func (v *BalanceHistoryView) SetFilters(f MovementFilters) { v.filters = f }
func (v *BalanceHistoryView) ClearFilters()                { v.filters = MovementFilters{} }
func (v *BalanceHistoryView) Loading() bool                { return v.loading }
func (v *BalanceHistoryView) LoadError() string            { return v.loadError }

// Rows returns the filtered trail with display formatting.
func (v *BalanceHistoryView) Rows() []MovementRow {
	filtered := v.filters.Apply(v.movements)
	rows := make([]MovementRow, 0, len(filtered))
	for _, m := range filtered {
		rows = append(rows, MovementRow{
			BalanceMovement: m,
			DisplayName:     displayName(m.EmployeeName),
			DaysDisplay:     signedDays(m.Days),
		})
	}
	return rows
}

// signedDays renders a movement delta with an explicit plus sign on
// credits so the trail scans at a glance.
func signedDays(d decimal.Decimal) string {
	if d.GreaterThan(decimal.Zero) {
		return "+" + d.String()
	}
	return d.String()
}
