package dto

import (
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveHoliday is the payload for creating or updating a holiday entry.
type SaveHoliday struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name" binding:"required"`
	Date           domain.Date     `json:"date" binding:"required"`
	CountryCode    string          `json:"countryCode" binding:"required"`
	DeductionValue decimal.Decimal `json:"deductionValue"`
	Description    string          `json:"description"`
}

// SyncHolidaysBody triggers the asynchronous holiday import.
type SyncHolidaysBody struct {
	CountryCode string `json:"countryCode" binding:"required"`
	Year        int    `json:"year" binding:"required"`
}

// BulkDeleteHolidaysBody removes holidays for a year, optionally narrowed
// to one country.
type BulkDeleteHolidaysBody struct {
	CountryCode string `json:"countryCode"`
	Year        int    `json:"year" binding:"required"`
	Confirmed   bool   `json:"confirmed"`
}
