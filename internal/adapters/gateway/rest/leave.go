package rest

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
)

// LeaveAdapter implements the leave request query and command ports.
type LeaveAdapter struct {
	client *Client
}

// NewLeaveAdapter builds the leave adapter on the shared client.
func NewLeaveAdapter(client *Client) *LeaveAdapter {
	return &LeaveAdapter{client: client}
}

func (a *LeaveAdapter) MyRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := a.client.get(ctx, "/api/v1/leave-requests/mine", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LeaveAdapter) TeamRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := a.client.get(ctx, "/api/v1/leave-requests/team", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LeaveAdapter) TeamRequestsLog(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := a.client.get(ctx, "/api/v1/leave-requests/team/log", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LeaveAdapter) ManagerTeamRequests(ctx context.Context, managerID string) ([]domain.LeaveRequest, error) {
	query := url.Values{"managerId": {managerID}}
	var out []domain.LeaveRequest
	if err := a.client.get(ctx, "/api/v1/leave-requests/team", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LeaveAdapter) RequestByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	if err := a.client.get(ctx, "/api/v1/leave-requests/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *LeaveAdapter) AbsentEmployees(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := a.client.get(ctx, "/api/v1/leave-requests/absences/today", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LeaveAdapter) RequestedDays(ctx context.Context, start, end domain.Date) (decimal.Decimal, error) {
	query := url.Values{
		"startDate": {string(start)},
		"endDate":   {string(end)},
	}
	var out struct {
		Days decimal.Decimal `json:"days"`
	}
	if err := a.client.get(ctx, "/api/v1/leave-requests/requested-days", query, &out); err != nil {
		return decimal.Zero, err
	}
	return out.Days, nil
}

func (a *LeaveAdapter) CreateRequest(ctx context.Context, req dto.SaveLeaveRequest) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := a.client.post(ctx, "/api/v1/leave-requests", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (a *LeaveAdapter) UpdateRequest(ctx context.Context, id string, req dto.SaveLeaveRequest) error {
	return a.client.put(ctx, "/api/v1/leave-requests/"+url.PathEscape(id), req, nil)
}

func (a *LeaveAdapter) RecallAndUpdate(ctx context.Context, id string, start, end domain.Date, comment string) error {
	body := struct {
		StartDate domain.Date `json:"startDate"`
		EndDate   domain.Date `json:"endDate"`
		Comment   string      `json:"comment"`
	}{start, end, comment}
	return a.client.post(ctx, "/api/v1/leave-requests/"+url.PathEscape(id)+"/recall-and-update", body, nil)
}

func (a *LeaveAdapter) CancelRequest(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := a.client.post(ctx, "/api/v1/leave-requests/"+url.PathEscape(id)+"/cancel", nil, &out); err != nil {
		return "", err
	}
	if out.Message == "" {
		out.Message = "Request cancelled."
	}
	return out.Message, nil
}

func (a *LeaveAdapter) RequestCancellation(ctx context.Context, id string) error {
	return a.client.post(ctx, "/api/v1/leave-requests/"+url.PathEscape(id)+"/request-cancellation", nil, nil)
}

func (a *LeaveAdapter) WithdrawCancellation(ctx context.Context, id string) error {
	return a.client.post(ctx, "/api/v1/leave-requests/"+url.PathEscape(id)+"/withdraw-cancellation", nil, nil)
}

func (a *LeaveAdapter) ApproveRequest(ctx context.Context, id string) error {
	return a.client.post(ctx, "/api/v1/leave-requests/"+url.PathEscape(id)+"/approve", nil, nil)
}

func (a *LeaveAdapter) RejectRequest(ctx context.Context, id, reason, comment string, reasonRequired bool) error {
	body := dto.RejectRequestBody{Reason: reason, Comment: comment, ReasonRequired: reasonRequired}
	return a.client.post(ctx, "/api/v1/leave-requests/"+url.PathEscape(id)+"/reject", body, nil)
}
