package views_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/views"
)

type CalendarViewTestSuite struct {
	suite.Suite
	leaves   *MockLeaveQueries
	holidays *MockHolidayQueries
	bus      *bus.Bus
	view     *views.CalendarView
}

func (s *CalendarViewTestSuite) SetupTest() {
	s.leaves = new(MockLeaveQueries)
	s.holidays = new(MockHolidayQueries)
	s.bus = newTestBus()
	s.view = views.NewCalendarView(s.leaves, s.holidays, s.bus, domain.ScopeMy, testLogger())
}

func (s *CalendarViewTestSuite) TearDownTest() {
	s.view.Close()
}

func (s *CalendarViewTestSuite) TestEvents_EndDateIsExclusive() {
	ctx := context.Background()
	approved := domain.LeaveRequest{
		ID: "r1", Number: "REQ-0001", Type: domain.TypePaidLeave,
		Status: domain.StatusApproved, StartDate: "2025-01-01", EndDate: "2025-01-03",
	}
	s.leaves.On("MyRequests", ctx).Return([]domain.LeaveRequest{approved}, nil).Once()
	s.Require().NoError(s.view.Refresh(ctx))

	events := s.view.Events()

	s.Require().Len(events, 1)
	s.Equal(domain.Date("2025-01-01"), events[0].Start)
	s.Equal(domain.Date("2025-01-04"), events[0].End)
	s.Equal("#0070d2", events[0].Color)
	s.True(events[0].AllDay)
}

func (s *CalendarViewTestSuite) TestEvents_OwnScopeTitleUsesRequestNumber() {
	ctx := context.Background()
	approved := domain.LeaveRequest{
		ID: "r1", Number: "REQ-0001", RequesterName: "Alice Martin",
		Type: domain.TypeRTT, Status: domain.StatusApproved,
		StartDate: "2025-01-01", EndDate: "2025-01-01",
	}
	s.leaves.On("MyRequests", ctx).Return([]domain.LeaveRequest{approved}, nil).Once()
	s.Require().NoError(s.view.Refresh(ctx))

	s.Equal("REQ-0001 : RTT", s.view.Events()[0].Title)
}

func (s *CalendarViewTestSuite) TestEvents_OwnScopeExcludesCancellationRequested() {
	ctx := context.Background()
	reqs := []domain.LeaveRequest{
		{ID: "r1", Status: domain.StatusApproved, StartDate: "2025-01-01", EndDate: "2025-01-01"},
		{ID: "r2", Status: domain.StatusCancellationRequested, StartDate: "2025-02-01", EndDate: "2025-02-01"},
		{ID: "r3", Status: domain.StatusSubmitted, StartDate: "2025-03-01", EndDate: "2025-03-01"},
	}
	s.leaves.On("MyRequests", ctx).Return(reqs, nil).Once()
	s.Require().NoError(s.view.Refresh(ctx))

	events := s.view.Events()
	s.Require().Len(events, 1)
	s.Equal("r1", events[0].ID)
}

func (s *CalendarViewTestSuite) TestContextChange_SwitchesToTeamScope() {
	ctx := context.Background()
	team := domain.LeaveRequest{
		ID: "r1", RequesterName: "Bob Durand", Type: domain.TypePaidLeave,
		Status: domain.StatusCancellationRequested, StartDate: "2025-01-01", EndDate: "2025-01-02",
	}
	s.leaves.On("TeamRequests", ctx).Return([]domain.LeaveRequest{team}, nil).Once()

	s.bus.CalendarContext.Publish(ctx, bus.CalendarContext{Scope: domain.ScopeTeam})

	s.Equal(domain.ScopeTeam, s.view.Scope())
	events := s.view.Events()
	s.Require().Len(events, 1)
	s.Equal("Bob Durand : Paid Leave", events[0].Title)
}

func (s *CalendarViewTestSuite) TestContextChange_EmptyScopeIgnored() {
	s.bus.CalendarContext.Publish(context.Background(), bus.CalendarContext{})
	s.Equal(domain.ScopeMy, s.view.Scope())
	s.leaves.AssertNotCalled(s.T(), "MyRequests")
}

func (s *CalendarViewTestSuite) TestManagerTeamScope_HighlightsSelectedRequest() {
	ctx := context.Background()
	// Submitted, so not displayable on its own; the selection still
	// surfaces it as a highlighted event.
	selected := domain.LeaveRequest{
		ID: "r7", RequesterName: "Carol Diaz", Type: domain.TypeRTT,
		Status: domain.StatusSubmitted, StartDate: "2025-05-05", EndDate: "2025-05-06",
	}
	s.leaves.On("ManagerTeamRequests", ctx, "mgr-1").Return([]domain.LeaveRequest{selected}, nil).Once()

	s.bus.CalendarContext.Publish(ctx, bus.CalendarContext{
		Scope:             domain.ScopeManagerTeam,
		ManagerID:         "mgr-1",
		SelectedRequestID: "r7",
	})

	events := s.view.Events()
	s.Require().Len(events, 1)
	s.True(events[0].Highlighted)
	s.Equal(domain.Date("2025-05-07"), events[0].End)
}

func (s *CalendarViewTestSuite) TestHolidayEvents() {
	ctx := context.Background()
	s.holidays.On("Holidays", ctx, "", 0).Return([]domain.Holiday{
		{ID: "h1", Name: "Bastille Day", Date: "2025-07-14", CountryCode: "FR"},
	}, nil).Once()

	s.Require().NoError(s.view.RefreshHolidays(ctx))

	events := s.view.Events()
	s.Require().Len(events, 1)
	s.Equal("Bastille Day", events[0].Title)
	s.Equal("#e39139", events[0].Color)
	s.Equal(domain.Date("2025-07-15"), events[0].End)
}

func TestCalendarViewTestSuite(t *testing.T) {
	suite.Run(t, new(CalendarViewTestSuite))
}
