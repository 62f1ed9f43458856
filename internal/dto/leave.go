// Package dto defines the request/response shapes exchanged with the
// gateway and with the browser-facing API.
package dto

import (
	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// SaveLeaveRequest is the payload for creating or updating a leave request.
// BalanceID references the applicable balance for balance-tracked leave
// types and is resolved by the editor before submission.
type SaveLeaveRequest struct {
	Type            domain.LeaveType `json:"leaveType" binding:"required" validate:"required"`
	StartDate       domain.Date      `json:"startDate" binding:"required" validate:"required"`
	EndDate         domain.Date      `json:"endDate" binding:"required" validate:"required"`
	EmployeeComment string           `json:"employeeComment" validate:"max=2000"`
	BalanceID       string           `json:"balanceID,omitempty"`
}

// RejectRequestBody carries a manager's rejection. Reason is mandatory when
// the backend flags the request as reason-required.
type RejectRequestBody struct {
	Reason         string `json:"reason"`
	Comment        string `json:"comment"`
	ReasonRequired bool   `json:"reasonRequired"`
}

// RowActionBody dispatches a row action from the browser. Confirmed records
// that the user acknowledged the confirmation prompt for destructive
// actions.
type RowActionBody struct {
	Action    string `json:"action" binding:"required"`
	RecordID  string `json:"recordID" binding:"required"`
	Confirmed bool   `json:"confirmed"`
}

// EditorDraftBody carries the editor's draft fields as typed so far. No
// field is mandatory; validation happens on save.
type EditorDraftBody struct {
	Type            domain.LeaveType `json:"leaveType"`
	StartDate       domain.Date      `json:"startDate"`
	EndDate         domain.Date      `json:"endDate"`
	EmployeeComment string           `json:"employeeComment"`
}

// OpenEditBody opens the editor on an existing request.
type OpenEditBody struct {
	RecordID string `json:"recordID" binding:"required"`
}

// ConfirmBody acknowledges a confirmation prompt for commands without
// further parameters.
type ConfirmBody struct {
	Confirmed bool `json:"confirmed"`
}
