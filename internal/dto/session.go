package dto

import (
	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// CreateSessionBody opens a page session mounted at a calendar scope.
type CreateSessionBody struct {
	Scope domain.CalendarScope `json:"scope" binding:"required"`
}

// SessionResponse is the handle the browser keeps for the session.
type SessionResponse struct {
	SessionID  string               `json:"sessionID"`
	EmployeeID string               `json:"employeeID"`
	Scope      domain.CalendarScope `json:"scope"`
}

// SelectBody identifies a clicked row.
type SelectBody struct {
	RecordID string `json:"recordID" binding:"required"`
}

// CalendarContextBody switches the calendar scope, optionally narrowing to
// one manager's team and highlighting one request.
type CalendarContextBody struct {
	Scope             domain.CalendarScope `json:"scope" binding:"required"`
	ManagerID         string               `json:"managerID"`
	SelectedRequestID string               `json:"selectedRequestID"`
}
