package views

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// StatusTile is one dashboard counter.
type StatusTile struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TeamDashboardView backs the manager's pending-work summary: one tile per
// in-pipeline status plus a total. It re-fetches on every DataModified.
type TeamDashboardView struct {
	queries ports.LeaveQueries
	logger  *slog.Logger

	requests  []domain.LeaveRequest
	loadError string
	closed    bool
	unsubs    []func()
}

// NewTeamDashboardView wires the dashboard to the session bus.
func NewTeamDashboardView(q ports.LeaveQueries, b *bus.Bus, logger *slog.Logger) *TeamDashboardView {
	v := &TeamDashboardView{queries: q, logger: logger}
	subModified := b.DataModified.Subscribe(func(ctx context.Context, _ bus.DataModified) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs, func() { b.DataModified.Unsubscribe(subModified) })
	return v
}

// Close detaches the dashboard from the bus.
func (v *TeamDashboardView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the team queue the tiles are computed from.
func (v *TeamDashboardView) Refresh(ctx context.Context) error {
	data, err := v.queries.TeamRequests(ctx)
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading team summary."
		v.logger.ErrorContext(ctx, "team dashboard fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.requests = data
	v.loadError = ""
	return nil
}

// LoadError returns the inline error text of the last fetch.
func (v *TeamDashboardView) LoadError() string { return v.loadError }

// dashboardStatuses fixes which statuses get a tile, in display order. The
// total sums exactly these; other statuses never count.
var dashboardStatuses = []domain.LeaveStatus{
	domain.StatusPendingManagerApproval,
	domain.StatusPendingHRApproval,
	domain.StatusEscalated,
	domain.StatusCancellationRequested,
}

// Tiles recomputes the counters from the current collection.
func (v *TeamDashboardView) Tiles() []StatusTile {
	counts := map[domain.LeaveStatus]int{}
	for _, r := range v.requests {
		counts[r.Status]++
	}
	tiles := make([]StatusTile, 0, len(dashboardStatuses)+1)
	total := 0
	for _, s := range dashboardStatuses {
		tiles = append(tiles, StatusTile{Label: string(s), Count: counts[s]})
		total += counts[s]
	}
	return append(tiles, StatusTile{Label: "Total Pending", Count: total})
}

// BalanceTile is one balance dashboard card.
type BalanceTile struct {
	Type  domain.LeaveType `json:"leaveType"`
	Label string           `json:"label"`
	Value decimal.Decimal  `json:"value"`
}

// balanceTileConfig fixes the tile order and whether a type surfaces what
// is left or what was taken. Allocation-tracked types show the remainder;
// the open-ended ones show consumption.
var balanceTileConfig = []struct {
	Type          domain.LeaveType
	ShowRemaining bool
}{
	{domain.TypeRTT, true},
	{domain.TypePaidLeave, true},
	{domain.TypeUnpaidLeave, false},
	{domain.TypeSickLeave, false},
	{domain.TypeTraining, false},
}

// BalanceOverviewView backs the per-type balance cards on the employee
// home. It re-fetches on every RefreshBalance.
type BalanceOverviewView struct {
	queries ports.BalanceQueries
	logger  *slog.Logger

	overview  []domain.BalanceOverview
	loadError string
	closed    bool
	unsubs    []func()
}

// NewBalanceOverviewView wires the cards to the session bus.
func NewBalanceOverviewView(q ports.BalanceQueries, b *bus.Bus, logger *slog.Logger) *BalanceOverviewView {
	v := &BalanceOverviewView{queries: q, logger: logger}
	subBalance := b.RefreshBalance.Subscribe(func(ctx context.Context, _ bus.RefreshBalance) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs, func() { b.RefreshBalance.Unsubscribe(subBalance) })
	return v
}

// Close detaches the cards from the bus.
func (v *BalanceOverviewView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the per-type summary.
func (v *BalanceOverviewView) Refresh(ctx context.Context) error {
	data, err := v.queries.BalanceOverview(ctx)
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading balances."
		v.logger.ErrorContext(ctx, "balance overview fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.overview = data
	v.loadError = ""
	return nil
}

// LoadError returns the inline error text of the last fetch.
func (v *BalanceOverviewView) LoadError() string { return v.loadError }

// Tiles builds the five fixed cards. Types absent from the gateway summary
// render a zero value rather than disappearing. Negative remainders are
// rendered as-is; overdraft policy belongs to the backend.
func (v *BalanceOverviewView) Tiles() []BalanceTile {
	byType := map[domain.LeaveType]domain.BalanceOverview{}
	for _, o := range v.overview {
		byType[o.Type] = o
	}
	tiles := make([]BalanceTile, 0, len(balanceTileConfig))
	for _, cfg := range balanceTileConfig {
		o := byType[cfg.Type]
		tile := BalanceTile{Type: cfg.Type}
		if cfg.ShowRemaining {
			tile.Label = "Remaining"
			tile.Value = o.Remaining
		} else {
			tile.Label = "Consumed"
			tile.Value = o.Consumed
		}
		tiles = append(tiles, tile)
	}
	return tiles
}
