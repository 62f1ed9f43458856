package views_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
)

type HRHolidaysTestSuite struct {
	suite.Suite
	queries  *MockHolidayQueries
	commands *MockHolidayCommands
	notifier *FakeNotifier
	view     *views.HRHolidaysView
}

func (s *HRHolidaysTestSuite) SetupTest() {
	s.queries = new(MockHolidayQueries)
	s.commands = new(MockHolidayCommands)
	s.notifier = new(FakeNotifier)
	s.view = views.NewHRHolidaysView(s.queries, s.commands, s.notifier, testLogger())
}

func (s *HRHolidaysTestSuite) TestDefaultFilterIsCurrentYear() {
	s.Equal(time.Now().Year(), s.view.Filters().Year)
	s.Empty(s.view.Filters().Country)
}

func (s *HRHolidaysTestSuite) TestCountries() {
	s.Equal(domain.HolidayCountries, s.view.Countries())
}

func (s *HRHolidaysTestSuite) TestSave_RefetchesList() {
	ctx := context.Background()
	body := dto.SaveHoliday{Name: "Bastille Day", Date: "2025-07-14", CountryCode: "FR"}
	s.commands.On("SaveHoliday", ctx, body).Return("h1", nil).Once()
	s.queries.On("Holidays", ctx, "", 0).Return([]domain.Holiday{
		{ID: "h1", Name: "Bastille Day", Date: "2025-07-14", CountryCode: "FR"},
	}, nil).Once()

	s.Require().NoError(s.view.Save(ctx, body))

	s.Equal([]string{"Holiday saved."}, s.notifier.Successes)
	s.view.SetFilters(views.HolidayFilters{Year: 2025})
	s.Len(s.view.Rows(), 1)
	s.commands.AssertExpectations(s.T())
}

func (s *HRHolidaysTestSuite) TestDelete_RequiresConfirmation() {
	ctx := context.Background()
	s.queries.On("Holidays", ctx, "", 0).Return([]domain.Holiday{
		{ID: "h1", Name: "Bastille Day", Date: "2025-07-14"},
	}, nil).Once()
	s.Require().NoError(s.view.Refresh(ctx))

	err := s.view.Delete(ctx, "h1", false)

	s.ErrorIs(err, apperrors.ErrConfirmationRequired)
	s.Contains(err.Error(), "Bastille Day")
	s.commands.AssertNotCalled(s.T(), "DeleteHoliday", mock.Anything, mock.Anything)
}

func (s *HRHolidaysTestSuite) TestDelete_UnknownHoliday() {
	err := s.view.Delete(context.Background(), "nope", true)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *HRHolidaysTestSuite) TestSync_NotifiesAsyncStart() {
	ctx := context.Background()
	s.commands.On("SyncHolidays", ctx, "FR", 2025).Return(nil).Once()

	s.Require().NoError(s.view.Sync(ctx, dto.SyncHolidaysBody{CountryCode: "FR", Year: 2025}))

	s.Require().Len(s.notifier.Infos, 1)
	s.Contains(s.notifier.Infos[0], "FR 2025")
	// No synchronous re-fetch; the import runs in the background.
	s.queries.AssertNotCalled(s.T(), "Holidays", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HRHolidaysTestSuite) TestBulkDelete_ReportsCount() {
	ctx := context.Background()
	s.commands.On("BulkDeleteHolidays", ctx, "", 2024).Return(11, nil).Once()
	s.queries.On("Holidays", ctx, "", 0).Return([]domain.Holiday{}, nil).Once()

	err := s.view.BulkDelete(ctx, dto.BulkDeleteHolidaysBody{Year: 2024, Confirmed: true})

	s.Require().NoError(err)
	s.Equal([]string{"11 holidays deleted."}, s.notifier.Successes)
}

func (s *HRHolidaysTestSuite) TestBulkDelete_RequiresConfirmation() {
	err := s.view.BulkDelete(context.Background(), dto.BulkDeleteHolidaysBody{Year: 2024})

	s.ErrorIs(err, apperrors.ErrConfirmationRequired)
	s.Contains(err.Error(), "all countries")
	s.commands.AssertNotCalled(s.T(), "BulkDeleteHolidays", mock.Anything, mock.Anything, mock.Anything)
}

func TestHRHolidaysTestSuite(t *testing.T) {
	suite.Run(t, new(HRHolidaysTestSuite))
}
