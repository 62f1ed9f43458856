package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveStatus is the closed set of request statuses known to this UI layer.
// The backend owns the state machine; unknown values must degrade to a
// generic presentation instead of failing (see views.DeriveRowPresentation).
type LeaveStatus string

const (
	StatusSubmitted              LeaveStatus = "Submitted"
	StatusPendingManagerApproval LeaveStatus = "Pending Manager Approval"
	StatusPendingHRApproval      LeaveStatus = "Pending HR Approval"
	StatusEscalated              LeaveStatus = "Escalated to Senior Manager"
	StatusApproved               LeaveStatus = "Approved"
	StatusRejected               LeaveStatus = "Rejected"
	StatusCancelled              LeaveStatus = "Cancelled"
	StatusCancellationRequested  LeaveStatus = "Cancellation Requested"
)

// AllStatuses lists the statuses offered in filter pickers, in display order.
// Must match the backend picklist; drift is a deployment concern.
var AllStatuses = []LeaveStatus{
	StatusSubmitted,
	StatusPendingManagerApproval,
	StatusPendingHRApproval,
	StatusEscalated,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCancellationRequested,
}

// IsTerminal reports whether the status permits no further employee action
// beyond viewing details.
func (s LeaveStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// InApproval reports whether the request sits somewhere in the approval
// pipeline and can still be edited or cancelled outright by its requester.
func (s LeaveStatus) InApproval() bool {
	switch s {
	case StatusSubmitted, StatusPendingManagerApproval, StatusPendingHRApproval, StatusEscalated:
		return true
	default:
		return false
	}
}

// LeaveType is the closed set of leave types known to this UI layer.
type LeaveType string

const (
	TypePaidLeave   LeaveType = "Paid Leave"
	TypeRTT         LeaveType = "RTT"
	TypeSickLeave   LeaveType = "Sick Leave"
	TypeTraining    LeaveType = "Training"
	TypeUnpaidLeave LeaveType = "Unpaid Leave"
)

// AllLeaveTypes lists the leave types offered in filter pickers and the
// request form, in display order.
var AllLeaveTypes = []LeaveType{
	TypePaidLeave,
	TypeRTT,
	TypeSickLeave,
	TypeTraining,
	TypeUnpaidLeave,
}

// RequiresDocument reports whether a supporting document must be attached
// before a request of this type is complete.
func (t LeaveType) RequiresDocument() bool {
	return t == TypeTraining || t == TypeSickLeave
}

// BalanceTracked reports whether requests of this type consume a tracked
// allocation. Untracked types skip the balance lookup on submission.
func (t LeaveType) BalanceTracked() bool {
	return t == TypePaidLeave || t == TypeRTT
}

// LeaveRequest is a leave/absence request as consumed by the presentation
// layer. Authoritative storage is the remote gateway; DaysRequested is
// derived server-side from the date range and never edited directly.
type LeaveRequest struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"` // human-readable request number, e.g. REQ-0042
	RequesterID     string          `json:"requesterID"`
	RequesterName   string          `json:"requesterName"`
	Type            LeaveType       `json:"leaveType"`
	StartDate       Date            `json:"startDate"`
	EndDate         Date            `json:"endDate"` // last day of leave, inclusive
	DaysRequested   decimal.Decimal `json:"daysRequested"`
	Status          LeaveStatus     `json:"status"`
	EmployeeComment string          `json:"employeeComment"`
	ApproverComment string          `json:"approverComment"`
	RejectionReason string          `json:"rejectionReason"`
	LastModifiedAt  time.Time       `json:"lastModifiedAt"`
}

// RelatedFile is an attachment linked to a leave request.
type RelatedFile struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PolicySettings are the org-wide leave policy values editable by HR.
type PolicySettings struct {
	AnnualPaidLeaveDays decimal.Decimal `json:"annualPaidLeaveDays"`
}
