package views

import (
	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// RowAction is a user-invokable operation offered on a request row.
type RowAction string

const (
	ActionShowDetails         RowAction = "show_details"
	ActionEdit                RowAction = "edit"
	ActionCancel              RowAction = "cancel"
	ActionRequestCancellation RowAction = "request_cancellation"
	ActionWithdrawCancel      RowAction = "withdraw_cancellation"
	ActionApprove             RowAction = "approve"
	ActionReject              RowAction = "reject"
)

// RowPresentation is the derived display state of one request row.
type RowPresentation struct {
	BadgeClass      string      `json:"badgeClass"`
	ManagerResponse string      `json:"managerResponse"`
	Actions         []RowAction `json:"availableActions"`
}

// RequestRow pairs a request with its derived presentation.
type RequestRow struct {
	domain.LeaveRequest
	RowPresentation
}

// DeriveRowPresentation maps a request's status (and for approved rows its
// leave type) to the visual badge and the row actions offered to the
// requester. Unknown statuses coming from a newer backend fall through to
// the generic branch: details only, never a failure.
func DeriveRowPresentation(r domain.LeaveRequest) RowPresentation {
	p := RowPresentation{
		BadgeClass: badgeClassFor(r.Status),
		Actions:    []RowAction{ActionShowDetails},
	}
	switch {
	case r.Status == domain.StatusApproved:
		p.ManagerResponse = firstNonEmpty(r.ApproverComment, "Approved")
		// Sick leave cannot be un-taken; no cancellation path offered.
		if r.Type != domain.TypeSickLeave {
			p.Actions = append(p.Actions, ActionRequestCancellation)
		}
	case r.Status == domain.StatusCancellationRequested:
		p.ManagerResponse = "Cancellation requested"
		p.Actions = append(p.Actions, ActionWithdrawCancel)
	case r.Status.InApproval():
		p.ManagerResponse = "Pending..."
		p.Actions = append(p.Actions, ActionEdit, ActionCancel)
	case r.Status == domain.StatusRejected:
		p.ManagerResponse = firstNonEmpty(r.RejectionReason, r.ApproverComment, "Rejected")
	case r.Status == domain.StatusCancelled:
		p.ManagerResponse = "Cancelled by employee"
	}
	return p
}

// HasAction reports whether the derived presentation offers the action.
func (p RowPresentation) HasAction(a RowAction) bool {
	for _, act := range p.Actions {
		if act == a {
			return true
		}
	}
	return false
}

func badgeClassFor(s domain.LeaveStatus) string {
	switch {
	case s == domain.StatusApproved:
		return "badge-success"
	case s == domain.StatusRejected:
		return "badge-error"
	case s == domain.StatusCancelled:
		return "badge-muted"
	case s == domain.StatusCancellationRequested:
		return "badge-warning"
	case s.InApproval():
		return "badge-pending"
	default:
		return "badge"
	}
}

func buildRows(requests []domain.LeaveRequest) []RequestRow {
	rows := make([]RequestRow, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, RequestRow{LeaveRequest: r, RowPresentation: DeriveRowPresentation(r)})
	}
	return rows
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
