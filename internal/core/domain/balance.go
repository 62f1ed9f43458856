package domain

import (
	"github.com/shopspring/decimal"
)

// LeaveBalance is one employee's allocation for a leave type and policy
// year. One balance per (employee, leave type, year) is assumed unique by
// callers. Remaining may go negative; whether overdraft is allowed is a
// backend policy decision and is rendered as-is here.
type LeaveBalance struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeID"`
	EmployeeName  string          `json:"employeeName"`
	Type          LeaveType       `json:"leaveType"`
	AllocatedDays decimal.Decimal `json:"allocatedDays"`
	UsedDays      decimal.Decimal `json:"usedDays"`
	RemainingDays decimal.Decimal `json:"remainingDays"`
	Year          int             `json:"year"`
}

// BalanceOverview is the per-type summary consumed by the balance
// dashboard tiles.
type BalanceOverview struct {
	Type      LeaveType       `json:"leaveType"`
	Remaining decimal.Decimal `json:"remaining"`
	Consumed  decimal.Decimal `json:"consumed"`
}

// MovementType classifies a balance history line.
type MovementType string

const (
	MovementAllocation MovementType = "Allocation"
	MovementAccrual    MovementType = "Accrual"
	MovementDeduction  MovementType = "Deduction"
	MovementAdjustment MovementType = "Adjustment"
	MovementCorrection MovementType = "Correction"
)

// AllMovementTypes lists the movement types offered in filter pickers.
var AllMovementTypes = []MovementType{
	MovementAllocation,
	MovementAccrual,
	MovementDeduction,
	MovementAdjustment,
	MovementCorrection,
}

// BalanceMovement is one immutable audit-trail line recording a change to a
// leave balance. Movements are append-only and never mutated once created.
type BalanceMovement struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeID"`
	EmployeeName  string          `json:"employeeName"`
	Date          Date            `json:"date"`
	Type          MovementType    `json:"movementType"`
	LeaveType     LeaveType       `json:"leaveType"`
	Source        string          `json:"source"`
	Justification string          `json:"justification"`
	Days          decimal.Decimal `json:"days"` // signed delta
	NewBalance    decimal.Decimal `json:"newBalance"`
}
