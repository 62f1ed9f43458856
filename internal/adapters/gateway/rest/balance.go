package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
)

// BalanceAdapter implements the balance query and command ports.
type BalanceAdapter struct {
	client *Client
}

// NewBalanceAdapter builds the balance adapter on the shared client.
func NewBalanceAdapter(client *Client) *BalanceAdapter {
	return &BalanceAdapter{client: client}
}

func (a *BalanceAdapter) Balances(ctx context.Context) ([]domain.LeaveBalance, error) {
	var out []domain.LeaveBalance
	if err := a.client.get(ctx, "/api/v1/balances", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *BalanceAdapter) BalanceOverview(ctx context.Context) ([]domain.BalanceOverview, error) {
	var out []domain.BalanceOverview
	if err := a.client.get(ctx, "/api/v1/balances/overview", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *BalanceAdapter) BalanceHistory(ctx context.Context, scope string) ([]domain.BalanceMovement, error) {
	query := url.Values{}
	if scope != "" {
		query.Set("scope", scope)
	}
	var out []domain.BalanceMovement
	if err := a.client.get(ctx, "/api/v1/balances/history", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *BalanceAdapter) ApplicableBalance(ctx context.Context, employeeID string, t domain.LeaveType, year int) (*domain.LeaveBalance, error) {
	query := url.Values{
		"employeeId": {employeeID},
		"leaveType":  {string(t)},
		"year":       {strconv.Itoa(year)},
	}
	var out domain.LeaveBalance
	if err := a.client.get(ctx, "/api/v1/balances/applicable", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *BalanceAdapter) CorrectBalance(ctx context.Context, id string, allocated decimal.Decimal, justification string) error {
	body := dto.CorrectBalanceBody{AllocatedDays: allocated, Justification: justification}
	return a.client.post(ctx, "/api/v1/balances/"+url.PathEscape(id)+"/correct", body, nil)
}

func (a *BalanceAdapter) DeleteBalance(ctx context.Context, id string, justification string) error {
	query := url.Values{"justification": {justification}}
	return a.client.delete(ctx, "/api/v1/balances/"+url.PathEscape(id), query, nil)
}
