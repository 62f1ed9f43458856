package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
	"github.com/leavedesk/leavedesk/internal/dto"
	"github.com/leavedesk/leavedesk/internal/handlers"
	"github.com/leavedesk/leavedesk/internal/platform/config"
	"github.com/leavedesk/leavedesk/internal/session"
)

// --- Mock gateway ports ---

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

var _ ports.LeaveQueries = (*MockLeaveQueries)(nil)

type MockLeaveCommands struct {
	mock.Mock
}

func (m *MockLeaveCommands) CreateRequest(ctx context.Context, req dto.SaveLeaveRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *MockLeaveCommands) UpdateRequest(ctx context.Context, id string, req dto.SaveLeaveRequest) error {
	return m.Called(ctx, id, req).Error(0)
}
func (m *MockLeaveCommands) RecallAndUpdate(ctx context.Context, id string, start, end domain.Date, comment string) error {
	return m.Called(ctx, id, start, end, comment).Error(0)
}
func (m *MockLeaveCommands) CancelRequest(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *MockLeaveCommands) RequestCancellation(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockLeaveCommands) WithdrawCancellation(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockLeaveCommands) ApproveRequest(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockLeaveCommands) RejectRequest(ctx context.Context, id, reason, comment string, reasonRequired bool) error {
	return m.Called(ctx, id, reason, comment, reasonRequired).Error(0)
}

var _ ports.LeaveCommands = (*MockLeaveCommands)(nil)

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

var _ ports.BalanceQueries = (*MockBalanceQueries)(nil)

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
	return m.Called(ctx, fileID, recordID).Error(0)
}

var _ ports.AttachmentGateway = (*MockAttachmentGateway)(nil)

// --- Suite ---

type SessionHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	sessions  *session.Manager
	jwtSecret string

	leaveQueries  *MockLeaveQueries
	leaveCommands *MockLeaveCommands
	balances      *MockBalanceQueries
	attachments   *MockAttachmentGateway
}

func (suite *SessionHandlerTestSuite) generateTestToken(employeeID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "leavedesk-test",
		Subject:   employeeID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.leaveQueries = new(MockLeaveQueries)
	suite.leaveCommands = new(MockLeaveCommands)
	suite.balances = new(MockBalanceQueries)
	suite.attachments = new(MockAttachmentGateway)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := ports.Gateway{
		LeaveQueries:   suite.leaveQueries,
		LeaveCommands:  suite.leaveCommands,
		BalanceQueries: suite.balances,
		Attachments:    suite.attachments,
	}
	suite.sessions = session.NewManager(gw, logger)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	noLimit := func(c *gin.Context) { c.Next() }

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, suite.sessions, noLimit)
}

// allowBackgroundFetches registers unrestricted expectations for every
// query the bus cascade can trigger after a command.
func (suite *SessionHandlerTestSuite) allowBackgroundFetches(mine []domain.LeaveRequest) {
	suite.leaveQueries.On("MyRequests", mock.Anything).Return(mine, nil)
	suite.leaveQueries.On("TeamRequests", mock.Anything).Return([]domain.LeaveRequest{}, nil)
	suite.leaveQueries.On("TeamRequestsLog", mock.Anything).Return([]domain.LeaveRequest{}, nil)
	suite.leaveQueries.On("AbsentEmployees", mock.Anything).Return([]domain.LeaveRequest{}, nil)
	suite.balances.On("Balances", mock.Anything).Return([]domain.LeaveBalance{}, nil)
	suite.balances.On("BalanceOverview", mock.Anything).Return([]domain.BalanceOverview{}, nil)
	suite.balances.On("BalanceHistory", mock.Anything, mock.Anything).Return([]domain.BalanceMovement{}, nil)
}

func (suite *SessionHandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SessionHandlerTestSuite) openSession(token string) string {
	w := suite.do(http.MethodPost, "/api/v1/sessions", token, dto.CreateSessionBody{Scope: domain.ScopeMy})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.SessionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.SessionID
}

func (suite *SessionHandlerTestSuite) TestCreateSession() {
	token := suite.generateTestToken("emp-1")

	w := suite.do(http.MethodPost, "/api/v1/sessions", token, dto.CreateSessionBody{Scope: domain.ScopeMy})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SessionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.SessionID)
	suite.Equal("emp-1", resp.EmployeeID)
	suite.Equal(1, suite.sessions.Count())
}

func (suite *SessionHandlerTestSuite) TestCreateSession_UnknownScope() {
	token := suite.generateTestToken("emp-1")

	w := suite.do(http.MethodPost, "/api/v1/sessions", token, gin.H{"scope": "galaxy"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SessionHandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodPost, "/api/v1/sessions", "", dto.CreateSessionBody{Scope: domain.ScopeMy})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *SessionHandlerTestSuite) TestUnknownSession() {
	token := suite.generateTestToken("emp-1")
	w := suite.do(http.MethodGet, "/api/v1/sessions/nope/my-requests", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SessionHandlerTestSuite) TestForeignSessionRejected() {
	owner := suite.generateTestToken("emp-1")
	other := suite.generateTestToken("emp-2")
	id := suite.openSession(owner)

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/my-requests", id), other, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *SessionHandlerTestSuite) TestCloseSession() {
	token := suite.generateTestToken("emp-1")
	id := suite.openSession(token)

	w := suite.do(http.MethodDelete, "/api/v1/sessions/"+id, token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal(0, suite.sessions.Count())
}

func (suite *SessionHandlerTestSuite) TestMyRequestsRefreshAndState() {
	token := suite.generateTestToken("emp-1")
	id := suite.openSession(token)

	mine := []domain.LeaveRequest{{
		ID:        "req-1",
		Number:    "REQ-0001",
		Status:    domain.StatusApproved,
		Type:      domain.TypePaidLeave,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
	}}
	suite.allowBackgroundFetches(mine)

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/refresh", id), token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var state struct {
		Rows []struct {
			ID               string   `json:"id"`
			AvailableActions []string `json:"availableActions"`
		} `json:"rows"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &state))
	suite.Require().Len(state.Rows, 1)
	suite.Equal("req-1", state.Rows[0].ID)
	suite.Contains(state.Rows[0].AvailableActions, "request_cancellation")
}

func (suite *SessionHandlerTestSuite) TestRowActionNeedsConfirmation() {
	token := suite.generateTestToken("emp-1")
	id := suite.openSession(token)

	mine := []domain.LeaveRequest{{
		ID:     "req-1",
		Number: "REQ-0001",
		Status: domain.StatusApproved,
		Type:   domain.TypePaidLeave,
	}}
	suite.allowBackgroundFetches(mine)
	suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/refresh", id), token, nil)

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/actions", id), token,
		dto.RowActionBody{Action: "request_cancellation", RecordID: "req-1"})

	suite.Equal(http.StatusConflict, w.Code)
	var resp struct {
		ConfirmationRequired bool   `json:"confirmationRequired"`
		Prompt               string `json:"prompt"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ConfirmationRequired)
	suite.Contains(resp.Prompt, "REQ-0001")
	suite.leaveCommands.AssertNotCalled(suite.T(), "RequestCancellation", mock.Anything, mock.Anything)
}

func (suite *SessionHandlerTestSuite) TestConfirmedRowActionRunsCommand() {
	token := suite.generateTestToken("emp-1")
	id := suite.openSession(token)

	mine := []domain.LeaveRequest{{
		ID:     "req-1",
		Number: "REQ-0001",
		Status: domain.StatusApproved,
		Type:   domain.TypePaidLeave,
	}}
	suite.allowBackgroundFetches(mine)
	suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/refresh", id), token, nil)

	suite.leaveCommands.On("RequestCancellation", mock.Anything, "req-1").Return(nil).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/actions", id), token,
		dto.RowActionBody{Action: "request_cancellation", RecordID: "req-1", Confirmed: true})

	suite.Equal(http.StatusOK, w.Code)
	suite.leaveCommands.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestSelectionRoundTrip() {
	token := suite.generateTestToken("emp-1")
	id := suite.openSession(token)

	mine := []domain.LeaveRequest{{ID: "req-1", Number: "REQ-0001", Status: domain.StatusApproved}}
	suite.allowBackgroundFetches(mine)
	suite.leaveQueries.On("RequestByID", mock.Anything, "req-1").Return(&mine[0], nil)
	suite.attachments.On("RelatedFiles", mock.Anything, "req-1").Return([]domain.RelatedFile{}, nil)

	suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/refresh", id), token, nil)
	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/my-requests/select", id), token,
		dto.SelectBody{RecordID: "req-1"})
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/selection", id), token, nil)
	suite.Equal(http.StatusOK, w.Code)
	var sel struct {
		ActiveTab string `json:"activeTab"`
		Selection *struct {
			RecordID string `json:"recordID"`
		} `json:"selection"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &sel))
	suite.Equal("detail", sel.ActiveTab)
	suite.Require().NotNil(sel.Selection)
	suite.Equal("req-1", sel.Selection.RecordID)
}

func TestSessionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}
