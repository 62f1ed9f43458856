package views_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBus() *bus.Bus {
	return bus.New(testLogger())
}

// --- Mock LeaveQueries ---
type MockLeaveQueries struct {
	mock.Mock
}

func (m *MockLeaveQueries) MyRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveQueries) TeamRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveQueries) TeamRequestsLog(ctx context.Context) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveQueries) ManagerTeamRequests(ctx context.Context, managerID string) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveQueries) RequestByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveQueries) AbsentEmployees(ctx context.Context) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveQueries) RequestedDays(ctx context.Context, start, end domain.Date) (decimal.Decimal, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock LeaveCommands ---
type MockLeaveCommands struct {
	mock.Mock
}

func (m *MockLeaveCommands) CreateRequest(ctx context.Context, req dto.SaveLeaveRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockLeaveCommands) UpdateRequest(ctx context.Context, id string, req dto.SaveLeaveRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockLeaveCommands) RecallAndUpdate(ctx context.Context, id string, start, end domain.Date, comment string) error {
	args := m.Called(ctx, id, start, end, comment)
	return args.Error(0)
}

func (m *MockLeaveCommands) CancelRequest(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockLeaveCommands) RequestCancellation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveCommands) WithdrawCancellation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveCommands) ApproveRequest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveCommands) RejectRequest(ctx context.Context, id, reason, comment string, reasonRequired bool) error {
	args := m.Called(ctx, id, reason, comment, reasonRequired)
	return args.Error(0)
}

// --- Mock BalanceQueries ---
type MockBalanceQueries struct {
	mock.Mock
}

func (m *MockBalanceQueries) Balances(ctx context.Context) ([]domain.LeaveBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveBalance), args.Error(1)
}

func (m *MockBalanceQueries) BalanceOverview(ctx context.Context) ([]domain.BalanceOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceOverview), args.Error(1)
}

func (m *MockBalanceQueries) BalanceHistory(ctx context.Context, scope string) ([]domain.BalanceMovement, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceMovement), args.Error(1)
}

func (m *MockBalanceQueries) ApplicableBalance(ctx context.Context, employeeID string, t domain.LeaveType, year int) (*domain.LeaveBalance, error) {
	args := m.Called(ctx, employeeID, t, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveBalance), args.Error(1)
}

// --- Mock BalanceCommands ---
type MockBalanceCommands struct {
	mock.Mock
}

func (m *MockBalanceCommands) CorrectBalance(ctx context.Context, id string, allocated decimal.Decimal, justification string) error {
	args := m.Called(ctx, id, allocated, justification)
	return args.Error(0)
}

func (m *MockBalanceCommands) DeleteBalance(ctx context.Context, id string, justification string) error {
	args := m.Called(ctx, id, justification)
	return args.Error(0)
}

// --- Mock HolidayQueries ---
type MockHolidayQueries struct {
	mock.Mock
}

func (m *MockHolidayQueries) Holidays(ctx context.Context, country string, year int) ([]domain.Holiday, error) {
	args := m.Called(ctx, country, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

// --- Mock HolidayCommands ---
type MockHolidayCommands struct {
	mock.Mock
}

func (m *MockHolidayCommands) SaveHoliday(ctx context.Context, h dto.SaveHoliday) (string, error) {
	args := m.Called(ctx, h)
	return args.String(0), args.Error(1)
}

func (m *MockHolidayCommands) DeleteHoliday(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHolidayCommands) SyncHolidays(ctx context.Context, country string, year int) error {
	args := m.Called(ctx, country, year)
	return args.Error(0)
}

func (m *MockHolidayCommands) BulkDeleteHolidays(ctx context.Context, country string, year int) (int, error) {
	args := m.Called(ctx, country, year)
	return args.Int(0), args.Error(1)
}

// --- Mock AttachmentGateway ---
type MockAttachmentGateway struct {
	mock.Mock
}

func (m *MockAttachmentGateway) RelatedFiles(ctx context.Context, recordID string) ([]domain.RelatedFile, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RelatedFile), args.Error(1)
}

func (m *MockAttachmentGateway) DeleteRelatedFile(ctx context.Context, fileID, recordID string) error {
	args := m.Called(ctx, fileID, recordID)
	return args.Error(0)
}

// --- Mock PolicyGateway ---
type MockPolicyGateway struct {
	mock.Mock
}

func (m *MockPolicyGateway) PolicySettings(ctx context.Context) (*domain.PolicySettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicySettings), args.Error(1)
}

func (m *MockPolicyGateway) SavePolicySettings(ctx context.Context, s domain.PolicySettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// FakeNotifier records every notification for assertion.
type FakeNotifier struct {
	Successes []string
	Errors    []string
	Infos     []string
}

func (n *FakeNotifier) Success(_ context.Context, msg string) { n.Successes = append(n.Successes, msg) }
func (n *FakeNotifier) Error(_ context.Context, msg string)   { n.Errors = append(n.Errors, msg) }
func (n *FakeNotifier) Info(_ context.Context, msg string)    { n.Infos = append(n.Infos, msg) }
