package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/views"
)

func sampleRequests() []domain.LeaveRequest {
	return []domain.LeaveRequest{
		{ID: "r1", RequesterName: "Alice Martin", Type: domain.TypePaidLeave, Status: domain.StatusApproved, StartDate: "2025-01-10", EndDate: "2025-01-15"},
		{ID: "r2", RequesterName: "Bob Durand", Type: domain.TypeRTT, Status: domain.StatusSubmitted, StartDate: "2025-02-03", EndDate: "2025-02-03"},
		{ID: "r3", RequesterName: "alice petit", Type: domain.TypePaidLeave, Status: domain.StatusRejected, StartDate: "2025-03-01", EndDate: "2025-03-05"},
	}
}

func TestRequestFilters_EmptyIsIdentity(t *testing.T) {
	in := sampleRequests()
	out := views.RequestFilters{}.Apply(in)
	assert.Equal(t, in, out)
}

func TestRequestFilters_Conjunction(t *testing.T) {
	f := views.RequestFilters{
		LeaveType: domain.TypePaidLeave,
		Status:    domain.StatusApproved,
	}
	out := f.Apply(sampleRequests())
	assert.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestRequestFilters_NameMatchIsCaseInsensitiveSubstring(t *testing.T) {
	f := views.RequestFilters{RequesterName: "ALICE"}
	out := f.Apply(sampleRequests())
	assert.Len(t, out, 2)
	assert.Equal(t, "r1", out[0].ID)
	assert.Equal(t, "r3", out[1].ID)
}

func TestRequestFilters_DateBoundsAreInclusive(t *testing.T) {
	f := views.RequestFilters{StartDate: "2025-02-03", EndDate: "2025-03-05"}
	out := f.Apply(sampleRequests())
	assert.Len(t, out, 2)
	assert.Equal(t, "r2", out[0].ID)
	assert.Equal(t, "r3", out[1].ID)
}

func TestRequestFilters_DoesNotMutateSource(t *testing.T) {
	in := sampleRequests()
	views.RequestFilters{Status: domain.StatusApproved}.Apply(in)
	assert.Equal(t, sampleRequests(), in)
}

func TestRequestFilters_Idempotent(t *testing.T) {
	f := views.RequestFilters{LeaveType: domain.TypePaidLeave}
	once := f.Apply(sampleRequests())
	twice := f.Apply(once)
	assert.Equal(t, once, twice)
}

func TestHolidayFilters_CountryAndYear(t *testing.T) {
	in := []domain.Holiday{
		{ID: "h1", CountryCode: "FR", Date: "2025-07-14"},
		{ID: "h2", CountryCode: "US", Date: "2025-07-04"},
		{ID: "h3", CountryCode: "FR", Date: "2024-07-14"},
	}
	out := views.HolidayFilters{Country: "FR", Year: 2025}.Apply(in)
	assert.Len(t, out, 1)
	assert.Equal(t, "h1", out[0].ID)
}

func TestMovementFilters_DateRange(t *testing.T) {
	in := []domain.BalanceMovement{
		{ID: "m1", Date: "2025-01-01"},
		{ID: "m2", Date: "2025-06-15"},
		{ID: "m3", Date: "2025-12-31"},
	}
	out := views.MovementFilters{StartDate: "2025-06-15", EndDate: "2025-12-31"}.Apply(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "m2", out[0].ID)
}

func TestAbsenceFilters_NameAndType(t *testing.T) {
	in := []domain.LeaveRequest{
		{ID: "a1", RequesterName: "Alice Martin", Type: domain.TypeSickLeave},
		{ID: "a2", RequesterName: "Bob Durand", Type: domain.TypeSickLeave},
		{ID: "a3", RequesterName: "alice petit", Type: domain.TypePaidLeave},
	}
	out := views.AbsenceFilters{EmployeeName: "alice", LeaveType: domain.TypeSickLeave}.Apply(in)
	assert.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}
