package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// BalanceRow is one HR balance grid line with its derived display fields.
type BalanceRow struct {
	domain.LeaveBalance
	DisplayName string `json:"displayName"`
	Initials    string `json:"initials"`
	// Editable gates the correction and deletion actions. Only
	// allocation-tracked types carry a meaningful allocation to correct.
	Editable bool `json:"editable"`
}

// HRBalancesView backs the HR balance administration grid. Corrections and
// deletions both require a justification that the gateway turns into an
// audit-trail movement.
type HRBalancesView struct {
	queries  ports.BalanceQueries
	commands ports.BalanceCommands
	bus      *bus.Bus
	notifier ports.Notifier
	logger   *slog.Logger

	balances  []domain.LeaveBalance
	filters   BalanceFilters
	loading   bool
	loadError string
	closed    bool
	unsubs    []func()
}

// NewHRBalancesView wires the grid to the session bus.
func NewHRBalancesView(q ports.BalanceQueries, c ports.BalanceCommands, b *bus.Bus, n ports.Notifier, logger *slog.Logger) *HRBalancesView {
	v := &HRBalancesView{queries: q, commands: c, bus: b, notifier: n, logger: logger}
	subBalance := b.RefreshBalance.Subscribe(func(ctx context.Context, _ bus.RefreshBalance) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs, func() { b.RefreshBalance.Unsubscribe(subBalance) })
	return v
}

// Close detaches the grid from the bus.
func (v *HRBalancesView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches every balance, keeping the last-good collection on
// failure.
func (v *HRBalancesView) Refresh(ctx context.Context) error {
	v.loading = true
	data, err := v.queries.Balances(ctx)
	v.loading = false
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading balances."
		v.logger.ErrorContext(ctx, "balances fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.balances = data
	v.loadError = ""
	return nil
}

func (v *HRBalancesView) Filters() BalanceFilters     { return v.filters }
func (v *HRBalancesView) SetFilters(f BalanceFilters) { v.filters = f }
func (v *HRBalancesView) ClearFilters()               { v.filters = BalanceFilters{} }
func (v *HRBalancesView) Loading() bool               { return v.loading }
func (v *HRBalancesView) LoadError() string           { return v.loadError }

// Rows returns the filtered grid with derived display fields.
func (v *HRBalancesView) Rows() []BalanceRow {
	filtered := v.filters.Apply(v.balances)
	rows := make([]BalanceRow, 0, len(filtered))
	for _, b := range filtered {
		rows = append(rows, BalanceRow{
			LeaveBalance: b,
			DisplayName:  displayName(b.EmployeeName),
			Initials:     initialsFor(b.EmployeeName),
			Editable:     b.Type.BalanceTracked(),
		})
	}
	return rows
}

// Correct applies an HR correction to a balance's allocation. The
// justification is mandatory; the gateway recomputes the remainder.
func (v *HRBalancesView) Correct(ctx context.Context, balanceID string, allocated decimal.Decimal, justification string, confirmed bool) error {
	row, ok := v.find(balanceID)
	if !ok {
		return fmt.Errorf("balance %s: %w", balanceID, apperrors.ErrNotFound)
	}
	if !row.Type.BalanceTracked() {
		return fmt.Errorf("%s balances cannot be corrected: %w", row.Type, apperrors.ErrValidation)
	}
	if justification == "" {
		return fmt.Errorf("a justification is required: %w", apperrors.ErrValidation)
	}
	prompt := fmt.Sprintf("Set %s's %s allocation to %s days?",
		displayName(row.EmployeeName), row.Type, allocated.String())
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, "Balance corrected.", func() error {
		return v.commands.CorrectBalance(ctx, balanceID, allocated, justification)
	})
}

// Delete removes a balance with a mandatory justification.
func (v *HRBalancesView) Delete(ctx context.Context, balanceID, justification string, confirmed bool) error {
	row, ok := v.find(balanceID)
	if !ok {
		return fmt.Errorf("balance %s: %w", balanceID, apperrors.ErrNotFound)
	}
	if justification == "" {
		return fmt.Errorf("a justification is required: %w", apperrors.ErrValidation)
	}
	prompt := fmt.Sprintf("Delete %s's %s balance? This cannot be undone.",
		displayName(row.EmployeeName), row.Type)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	return v.runCommand(ctx, "Balance deleted.", func() error {
		return v.commands.DeleteBalance(ctx, balanceID, justification)
	})
}

func (v *HRBalancesView) runCommand(ctx context.Context, successMsg string, cmd func() error) error {
	v.loading = true
	defer func() { v.loading = false }()

	if err := cmd(); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, successMsg)
	v.bus.RefreshBalance.Publish(ctx, bus.RefreshBalance{})
	return nil
}

func (v *HRBalancesView) find(balanceID string) (domain.LeaveBalance, bool) {
	for _, b := range v.balances {
		if b.ID == balanceID {
			return b, true
		}
	}
	return domain.LeaveBalance{}, false
}
