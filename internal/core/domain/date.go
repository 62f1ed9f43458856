package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all civil dates exchanged with the
// gateway. The format is fixed-width, so lexicographic comparison of two
// Date values orders them chronologically.
const DateLayout = "2006-01-02"

// Date is a civil date in ISO YYYY-MM-DD form, without time or zone.
type Date string

// NewDate builds a Date from a time.Time, dropping the time-of-day part.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Parse returns the midnight UTC instant for the date.
func (d Date) Parse() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	return t, nil
}

// AddDays returns the date shifted by n calendar days. An unparseable date
// is returned unchanged; callers validate dates at the boundary.
func (d Date) AddDays(n int) Date {
	t, err := d.Parse()
	if err != nil {
		return d
	}
	return NewDate(t.AddDate(0, 0, n))
}

// Year returns the calendar year, or 0 for an unparseable date.
func (d Date) Year() int {
	t, err := d.Parse()
	if err != nil {
		return 0
	}
	return t.Year()
}

func (d Date) IsZero() bool { return d == "" }

// Before reports whether d is strictly earlier than other.
// Valid because the format is fixed-width.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d > other }

func (d Date) String() string { return string(d) }
