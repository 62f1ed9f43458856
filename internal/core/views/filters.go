package views

import (
	"strings"

	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// Filter application rules, shared by every list view: only non-empty
// fields constrain, active predicates are combined by conjunction, string
// matches are case-insensitive substring matches, date ranges compare ISO
// dates inclusively, and the source collection is never mutated.

// RequestFilters is the per-list filter state for request tables.
type RequestFilters struct {
	Status        domain.LeaveStatus `json:"status,omitempty"`
	LeaveType     domain.LeaveType   `json:"leaveType,omitempty"`
	RequesterName string             `json:"requesterName,omitempty"`
	StartDate     domain.Date        `json:"startDate,omitempty"`
	EndDate       domain.Date        `json:"endDate,omitempty"`
}

// Apply returns the requests satisfying every active predicate, preserving
// input order.
func (f RequestFilters) Apply(in []domain.LeaveRequest) []domain.LeaveRequest {
	out := make([]domain.LeaveRequest, 0, len(in))
	for _, r := range in {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.LeaveType != "" && r.Type != f.LeaveType {
			continue
		}
		if f.RequesterName != "" && !containsFold(r.RequesterName, f.RequesterName) {
			continue
		}
		if !f.StartDate.IsZero() && r.StartDate.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && r.EndDate.After(f.EndDate) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BalanceFilters is the filter state of the HR balances table.
type BalanceFilters struct {
	EmployeeName string           `json:"employeeName,omitempty"`
	LeaveType    domain.LeaveType `json:"leaveType,omitempty"`
}

func (f BalanceFilters) Apply(in []domain.LeaveBalance) []domain.LeaveBalance {
	out := make([]domain.LeaveBalance, 0, len(in))
	for _, b := range in {
		if f.EmployeeName != "" && !containsFold(b.EmployeeName, f.EmployeeName) {
			continue
		}
		if f.LeaveType != "" && b.Type != f.LeaveType {
			continue
		}
		out = append(out, b)
	}
	return out
}

// MovementFilters is the filter state of the balance history tables.
type MovementFilters struct {
	EmployeeName string              `json:"employeeName,omitempty"`
	MovementType domain.MovementType `json:"movementType,omitempty"`
	LeaveType    domain.LeaveType    `json:"leaveType,omitempty"`
	StartDate    domain.Date         `json:"startDate,omitempty"`
	EndDate      domain.Date         `json:"endDate,omitempty"`
}

func (f MovementFilters) Apply(in []domain.BalanceMovement) []domain.BalanceMovement {
	out := make([]domain.BalanceMovement, 0, len(in))
	for _, m := range in {
		if f.EmployeeName != "" && !containsFold(m.EmployeeName, f.EmployeeName) {
			continue
		}
		if f.MovementType != "" && m.Type != f.MovementType {
			continue
		}
		if f.LeaveType != "" && m.LeaveType != f.LeaveType {
			continue
		}
		if !f.StartDate.IsZero() && m.Date.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && m.Date.After(f.EndDate) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// HolidayFilters is the filter state of the holiday admin table. Country
// matches by exact code; Year matches the holiday date's calendar year.
type HolidayFilters struct {
	Country string `json:"country,omitempty"`
	Year    int    `json:"year,omitempty"`
}

func (f HolidayFilters) Apply(in []domain.Holiday) []domain.Holiday {
	out := make([]domain.Holiday, 0, len(in))
	for _, h := range in {
		if f.Country != "" && h.CountryCode != f.Country {
			continue
		}
		if f.Year != 0 && h.Date.Year() != f.Year {
			continue
		}
		out = append(out, h)
	}
	return out
}

// AbsenceFilters is the filter state of the who-is-out-today list.
type AbsenceFilters struct {
	EmployeeName string           `json:"employeeName,omitempty"`
	LeaveType    domain.LeaveType `json:"leaveType,omitempty"`
}

func (f AbsenceFilters) Apply(in []domain.LeaveRequest) []domain.LeaveRequest {
	out := make([]domain.LeaveRequest, 0, len(in))
	for _, r := range in {
		if f.EmployeeName != "" && !containsFold(r.RequesterName, f.EmployeeName) {
			continue
		}
		if f.LeaveType != "" && r.Type != f.LeaveType {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
