package views_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/dto"
)

type RequestEditorTestSuite struct {
	suite.Suite
	queries     *MockLeaveQueries
	commands    *MockLeaveCommands
	balances    *MockBalanceQueries
	attachments *MockAttachmentGateway
	bus         *bus.Bus
	notifier    *FakeNotifier
	view        *views.RequestEditorView
}

func (s *RequestEditorTestSuite) SetupTest() {
	s.queries = new(MockLeaveQueries)
	s.commands = new(MockLeaveCommands)
	s.balances = new(MockBalanceQueries)
	s.attachments = new(MockAttachmentGateway)
	s.bus = newTestBus()
	s.notifier = new(FakeNotifier)
	gw := ports.Gateway{
		LeaveQueries:   s.queries,
		LeaveCommands:  s.commands,
		BalanceQueries: s.balances,
		Attachments:    s.attachments,
	}
	s.view = views.NewRequestEditorView(gw, s.bus, s.notifier, "emp-1", testLogger())
}

func (s *RequestEditorTestSuite) fillDraft(t domain.LeaveType, start, end domain.Date) {
	ctx := context.Background()
	s.view.SetType(t)
	s.queries.On("RequestedDays", ctx, start, end).Return(decimal.NewFromInt(2), nil).Once()
	s.Require().NoError(s.view.SetDates(ctx, start, end))
}

func (s *RequestEditorTestSuite) TestSetDates_RecomputesDerivedDays() {
	s.view.OpenCreate()
	s.fillDraft(domain.TypeUnpaidLeave, "2025-04-01", "2025-04-02")

	s.True(s.view.DerivedDays().Equal(decimal.NewFromInt(2)))
}

func (s *RequestEditorTestSuite) TestSave_ValidationFailureKeepsModalOpen() {
	s.view.OpenCreate()
	// End before start never reaches the gateway.
	s.view.SetType(domain.TypeUnpaidLeave)

	err := s.view.Save(context.Background())

	s.ErrorIs(err, apperrors.ErrValidation)
	s.True(s.view.Open())
	s.False(s.view.Saving())
	s.commands.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (s *RequestEditorTestSuite) TestSave_RejectsEndDateBeforeStartDate() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.view.SetType(domain.TypeUnpaidLeave)
	// Reversed range: day derivation is skipped and save must not fire.
	s.Require().NoError(s.view.SetDates(ctx, "2025-04-10", "2025-04-01"))
	s.True(s.view.DerivedDays().IsZero())

	err := s.view.Save(ctx)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.True(s.view.Open())
	s.commands.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (s *RequestEditorTestSuite) TestSave_CreateUnpaidLeaveClosesAndBroadcasts() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.fillDraft(domain.TypeUnpaidLeave, "2025-04-01", "2025-04-02")

	s.commands.On("CreateRequest", ctx, mock.MatchedBy(func(r dto.SaveLeaveRequest) bool {
		return r.Type == domain.TypeUnpaidLeave && r.BalanceID == ""
	})).Return("new-1", nil).Once()

	modified, balance := 0, 0
	var selected bus.RequestSelected
	s.bus.DataModified.Subscribe(func(context.Context, bus.DataModified) { modified++ })
	s.bus.RefreshBalance.Subscribe(func(context.Context, bus.RefreshBalance) { balance++ })
	s.bus.RequestSelected.Subscribe(func(_ context.Context, msg bus.RequestSelected) { selected = msg })

	s.Require().NoError(s.view.Save(ctx))

	s.False(s.view.Open())
	s.Equal(1, modified)
	s.Equal(1, balance)
	s.Equal("new-1", selected.RecordID)
	s.Equal(domain.OriginMyRequest, selected.Origin)
	s.Equal([]string{"Request submitted."}, s.notifier.Successes)
}

func (s *RequestEditorTestSuite) TestSave_PaidLeaveResolvesApplicableBalance() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.fillDraft(domain.TypePaidLeave, "2025-04-01", "2025-04-02")

	s.balances.On("ApplicableBalance", ctx, "emp-1", domain.TypePaidLeave, 2025).
		Return(&domain.LeaveBalance{ID: "bal-7"}, nil).Once()
	s.commands.On("CreateRequest", ctx, mock.MatchedBy(func(r dto.SaveLeaveRequest) bool {
		return r.BalanceID == "bal-7"
	})).Return("new-2", nil).Once()

	s.Require().NoError(s.view.Save(ctx))
	s.balances.AssertExpectations(s.T())
	s.commands.AssertExpectations(s.T())
}

func (s *RequestEditorTestSuite) TestSave_TrainingWithoutDocumentEntersUploadStep() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.fillDraft(domain.TypeTraining, "2025-04-01", "2025-04-02")

	s.commands.On("CreateRequest", ctx, mock.Anything).Return("new-3", nil).Once()
	s.attachments.On("RelatedFiles", ctx, "new-3").Return([]domain.RelatedFile{}, nil).Once()
	modified := 0
	s.bus.DataModified.Subscribe(func(context.Context, bus.DataModified) { modified++ })

	s.Require().NoError(s.view.Save(ctx))

	s.True(s.view.Open())
	s.Equal(views.StepUpload, s.view.Step())
	s.Zero(modified)
	s.Len(s.notifier.Infos, 1)
}

func (s *RequestEditorTestSuite) TestFinishUpload_StillNoDocument() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.fillDraft(domain.TypeTraining, "2025-04-01", "2025-04-02")
	s.commands.On("CreateRequest", ctx, mock.Anything).Return("new-3", nil).Once()
	s.attachments.On("RelatedFiles", ctx, "new-3").Return([]domain.RelatedFile{}, nil).Twice()
	s.Require().NoError(s.view.Save(ctx))

	err := s.view.FinishUpload(ctx)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(views.StepUpload, s.view.Step())
	s.True(s.view.Open())
}

func (s *RequestEditorTestSuite) TestFinishUpload_DocumentAttachedCloses() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.fillDraft(domain.TypeSickLeave, "2025-04-01", "2025-04-02")
	s.commands.On("CreateRequest", ctx, mock.Anything).Return("new-4", nil).Once()
	s.attachments.On("RelatedFiles", ctx, "new-4").Return([]domain.RelatedFile{}, nil).Once()
	s.Require().NoError(s.view.Save(ctx))

	s.attachments.On("RelatedFiles", ctx, "new-4").
		Return([]domain.RelatedFile{{ID: "f1", Title: "certificate.pdf"}}, nil).Once()

	s.Require().NoError(s.view.FinishUpload(ctx))
	s.False(s.view.Open())
}

func (s *RequestEditorTestSuite) TestOpenEdit_RejectsApprovedRequest() {
	ctx := context.Background()
	approved := approvedRequest("r1")
	s.queries.On("RequestByID", ctx, "r1").Return(&approved, nil).Once()

	err := s.view.OpenEdit(ctx, "r1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.False(s.view.Open())
}

func (s *RequestEditorTestSuite) TestSaveEdit_SubmittedUsesPlainUpdate() {
	ctx := context.Background()
	submitted := &domain.LeaveRequest{
		ID: "r1", Number: "REQ-0001", Type: domain.TypeUnpaidLeave,
		Status: domain.StatusSubmitted, StartDate: "2025-04-01", EndDate: "2025-04-02",
		DaysRequested: decimal.NewFromInt(2),
	}
	s.queries.On("RequestByID", ctx, "r1").Return(submitted, nil).Once()
	s.Require().NoError(s.view.OpenEdit(ctx, "r1"))

	s.commands.On("UpdateRequest", ctx, "r1", mock.Anything).Return(nil).Once()

	s.Require().NoError(s.view.Save(ctx))
	s.commands.AssertNotCalled(s.T(), "RecallAndUpdate",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RequestEditorTestSuite) TestSaveEdit_PendingUsesRecallAndUpdate() {
	ctx := context.Background()
	pending := &domain.LeaveRequest{
		ID: "r1", Number: "REQ-0001", Type: domain.TypeUnpaidLeave,
		Status: domain.StatusPendingManagerApproval, StartDate: "2025-04-01", EndDate: "2025-04-02",
		DaysRequested: decimal.NewFromInt(2),
	}
	s.queries.On("RequestByID", ctx, "r1").Return(pending, nil).Once()
	s.Require().NoError(s.view.OpenEdit(ctx, "r1"))
	s.view.SetComment("moved my plans")

	s.commands.On("RecallAndUpdate", ctx, "r1",
		domain.Date("2025-04-01"), domain.Date("2025-04-02"), "moved my plans").Return(nil).Once()

	s.Require().NoError(s.view.Save(ctx))
	s.commands.AssertExpectations(s.T())
}

func (s *RequestEditorTestSuite) TestSave_CommandFailureKeepsModalOpen() {
	ctx := context.Background()
	s.view.OpenCreate()
	s.fillDraft(domain.TypeUnpaidLeave, "2025-04-01", "2025-04-02")

	s.commands.On("CreateRequest", ctx, mock.Anything).Return("", assert.AnError).Once()
	modified := 0
	s.bus.DataModified.Subscribe(func(context.Context, bus.DataModified) { modified++ })

	err := s.view.Save(ctx)

	s.Require().Error(err)
	s.True(s.view.Open())
	s.False(s.view.Saving())
	s.Zero(modified)
	s.Len(s.notifier.Errors, 1)
}

func TestRequestEditorTestSuite(t *testing.T) {
	suite.Run(t, new(RequestEditorTestSuite))
}
