// Package ports declares the interfaces the presentation layer consumes.
// The record gateway is an opaque remote service: every business rule
// (balance computation, approval routing, escalation, holiday generation)
// lives behind these interfaces.
package ports

import (
	"context"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/shopspring/decimal"
)

// LeaveQueries are the read operations for leave requests.
type LeaveQueries interface {
	// MyRequests returns the authenticated user's own requests.
	MyRequests(ctx context.Context) ([]domain.LeaveRequest, error)
	// TeamRequests returns the requests currently awaiting the manager.
	TeamRequests(ctx context.Context) ([]domain.LeaveRequest, error)
	// TeamRequestsLog returns the full treated/untreated team history.
	TeamRequestsLog(ctx context.Context) ([]domain.LeaveRequest, error)
	// ManagerTeamRequests returns requests of a specific manager's team.
	ManagerTeamRequests(ctx context.Context, managerID string) ([]domain.LeaveRequest, error)
	// RequestByID returns one request for the detail pane.
	RequestByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	// AbsentEmployees returns the approved requests covering today.
	AbsentEmployees(ctx context.Context) ([]domain.LeaveRequest, error)
	// RequestedDays computes the day count for a date range, applying
	// half-day and weekend exclusion rules server-side.
	RequestedDays(ctx context.Context, start, end domain.Date) (decimal.Decimal, error)
}

// LeaveCommands are the write operations for leave requests.
type LeaveCommands interface {
	CreateRequest(ctx context.Context, req dto.SaveLeaveRequest) (string, error)
	UpdateRequest(ctx context.Context, id string, req dto.SaveLeaveRequest) error
	// RecallAndUpdate pulls a request out of the approval pipeline,
	// applies the changes and resubmits it in one gateway operation.
	RecallAndUpdate(ctx context.Context, id string, start, end domain.Date, comment string) error
	// CancelRequest cancels outright; the returned string is the
	// confirmation text to surface to the user.
	CancelRequest(ctx context.Context, id string) (string, error)
	RequestCancellation(ctx context.Context, id string) error
	WithdrawCancellation(ctx context.Context, id string) error
	ApproveRequest(ctx context.Context, id string) error
	RejectRequest(ctx context.Context, id, reason, comment string, reasonRequired bool) error
}

// BalanceQueries are the read operations for leave balances.
type BalanceQueries interface {
	Balances(ctx context.Context) ([]domain.LeaveBalance, error)
	BalanceOverview(ctx context.Context) ([]domain.BalanceOverview, error)
	// BalanceHistory returns movements; scope "" means the caller's own,
	// "all" the org-wide trail (HR only).
	BalanceHistory(ctx context.Context, scope string) ([]domain.BalanceMovement, error)
	// ApplicableBalance resolves the balance a new request of the given
	// type would draw from.
	ApplicableBalance(ctx context.Context, employeeID string, t domain.LeaveType, year int) (*domain.LeaveBalance, error)
}

// BalanceCommands are the HR write operations for balances. Both carry a
// mandatory justification that becomes an audit-trail movement.
type BalanceCommands interface {
	CorrectBalance(ctx context.Context, id string, allocated decimal.Decimal, justification string) error
	DeleteBalance(ctx context.Context, id string, justification string) error
}

// HolidayQueries are the read operations for public holidays. Zero-valued
// country or year mean "all".
type HolidayQueries interface {
	Holidays(ctx context.Context, country string, year int) ([]domain.Holiday, error)
}

// HolidayCommands are the HR write operations for public holidays.
type HolidayCommands interface {
	SaveHoliday(ctx context.Context, h dto.SaveHoliday) (string, error)
	DeleteHoliday(ctx context.Context, id string) error
	// SyncHolidays triggers an asynchronous import for a country/year;
	// callers must re-fetch after a delay rather than expect the result.
	SyncHolidays(ctx context.Context, country string, year int) error
	// BulkDeleteHolidays removes holidays for a country ("" = all) and
	// year, returning the deleted count.
	BulkDeleteHolidays(ctx context.Context, country string, year int) (int, error)
}

// AttachmentGateway covers supporting documents linked to a request.
type AttachmentGateway interface {
	RelatedFiles(ctx context.Context, recordID string) ([]domain.RelatedFile, error)
	DeleteRelatedFile(ctx context.Context, fileID, recordID string) error
}

// PolicyGateway covers the org-wide leave policy settings.
type PolicyGateway interface {
	PolicySettings(ctx context.Context) (*domain.PolicySettings, error)
	SavePolicySettings(ctx context.Context, s domain.PolicySettings) error
}

// Gateway bundles every port of the remote backend, mirroring how the
// service container groups dependencies for injection.
type Gateway struct {
	LeaveQueries    LeaveQueries
	LeaveCommands   LeaveCommands
	BalanceQueries  BalanceQueries
	BalanceCommands BalanceCommands
	HolidayQueries  HolidayQueries
	HolidayCommands HolidayCommands
	Attachments     AttachmentGateway
	Policy          PolicyGateway
}
