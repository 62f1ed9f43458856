package dto

import (
	"github.com/shopspring/decimal"
)

// CorrectBalanceBody applies an HR correction to a balance's allocation.
// The justification is mandatory and becomes an audit-trail movement.
type CorrectBalanceBody struct {
	AllocatedDays decimal.Decimal `json:"allocatedDays" binding:"required"`
	Justification string          `json:"justification" binding:"required"`
}

// DeleteBalanceBody removes a balance with a mandatory justification.
type DeleteBalanceBody struct {
	Justification string `json:"justification" binding:"required"`
	Confirmed     bool   `json:"confirmed"`
}

// SavePolicySettingsBody updates the org-wide leave policy values.
type SavePolicySettingsBody struct {
	AnnualPaidLeaveDays decimal.Decimal `json:"annualPaidLeaveDays" binding:"required"`
}
