package domain

import (
	"github.com/shopspring/decimal"
)

// Holiday is a public holiday entry, maintained per country and year by HR.
// No two holidays should share (country, date), though this is not enforced
// client-side.
type Holiday struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Date           Date            `json:"date"`
	CountryCode    string          `json:"countryCode"`
	DeductionValue decimal.Decimal `json:"deductionValue"`
	Description    string          `json:"description"`
}

// Country is a selectable holiday country.
type Country struct {
	Label string `json:"label"`
	Code  string `json:"code"`
}

// HolidayCountries are the countries offered in the holiday admin screen.
var HolidayCountries = []Country{
	{Label: "France", Code: "FR"},
	{Label: "United States", Code: "US"},
	{Label: "Morocco", Code: "MA"},
}
