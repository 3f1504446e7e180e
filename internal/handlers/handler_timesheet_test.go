package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	memstore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/core/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
	"github.com/worklog-app/timesheet_backend/internal/handlers"
	"github.com/worklog-app/timesheet_backend/internal/platform/config"
	"github.com/worklog-app/timesheet_backend/internal/utils"
)

// --- Mock TimesheetService ---
type MockTimesheetService struct {
	mock.Mock
}

func (m *MockTimesheetService) Create(ctx context.Context, kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time, actorUserID int64) (*domain.Timesheet, error) {
	args := m.Called(ctx, kind, userID, periodStart, periodEnd, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetService) Decide(ctx context.Context, timesheetID int64, statusCode int, comment *string, deciderID *int64) (*domain.Timesheet, error) {
	args := m.Called(ctx, timesheetID, statusCode, comment, deciderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetService) GetByUserAndPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time) (*domain.Timesheet, error) {
	args := m.Called(ctx, kind, userID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetService) ListPendingForLeaderPeriod(ctx context.Context, kind domain.ReviewKind, leaderID int64, periodStart, periodEnd time.Time) ([]domain.TimeEntryDetail, error) {
	args := m.Called(ctx, kind, leaderID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntryDetail), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TimesheetSvcFacade = (*MockTimesheetService)(nil)

// --- Test Suite ---
type TimesheetHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockTimesheetService *MockTimesheetService
	jwtSecret            string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *TimesheetHandlerTestSuite) generateTestToken(userID int64) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "timesheet-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TimesheetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTimesheetService = new(MockTimesheetService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	loginLimiter := limiter.New(memstore.NewStore(), limiter.Rate{Period: time.Minute, Limit: 100})

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Timesheet: suite.mockTimesheetService,
	}, loginLimiter)
}

func (suite *TimesheetHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TimesheetHandlerTestSuite) TestCreateTimesheet_Success() {
	actorUserID := int64(42)
	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	expected := &domain.Timesheet{
		TimesheetID: 7,
		UserID:      actorUserID,
		Kind:        domain.KindTimesheet,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      domain.StatusPending,
	}

	// UserID omitted in the body: the handler substitutes the token subject.
	suite.mockTimesheetService.On("Create",
		mock.Anything, domain.KindTimesheet, actorUserID, periodStart, periodEnd, actorUserID,
	).Return(expected, nil).Once()

	body, _ := json.Marshal(dto.CreateTimesheetRequest{PeriodStart: periodStart, PeriodEnd: periodEnd})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timesheets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorUserID))

	w := suite.serve(req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TimesheetResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.TimesheetID)
	suite.Equal(domain.StatusPending, resp.Status)
	suite.Equal(domain.KindTimesheet, resp.Kind)

	suite.mockTimesheetService.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestCreateMonthlyReview_UsesReviewKind() {
	actorUserID := int64(42)
	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	expected := &domain.Timesheet{
		TimesheetID: 8,
		UserID:      actorUserID,
		Kind:        domain.KindMonthlyReview,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      domain.StatusPending,
	}

	suite.mockTimesheetService.On("Create",
		mock.Anything, domain.KindMonthlyReview, actorUserID, periodStart, periodEnd, actorUserID,
	).Return(expected, nil).Once()

	body, _ := json.Marshal(dto.CreateTimesheetRequest{PeriodStart: periodStart, PeriodEnd: periodEnd})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/monthly-reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorUserID))

	w := suite.serve(req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockTimesheetService.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestCreateTimesheet_DuplicatePeriodConflict() {
	actorUserID := int64(42)
	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	suite.mockTimesheetService.On("Create",
		mock.Anything, domain.KindTimesheet, actorUserID, periodStart, periodEnd, actorUserID,
	).Return(nil, services.ErrDuplicatePeriod).Once()

	body, _ := json.Marshal(dto.CreateTimesheetRequest{PeriodStart: periodStart, PeriodEnd: periodEnd})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timesheets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorUserID))

	w := suite.serve(req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockTimesheetService.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestDecide_InvalidStatusCode() {
	actorUserID := int64(9)

	suite.mockTimesheetService.On("Decide",
		mock.Anything, int64(7), 5, (*string)(nil), (*int64)(nil),
	).Return(nil, services.ErrInvalidStatusCode).Once()

	body, _ := json.Marshal(dto.DecideTimesheetRequest{StatusCode: 5})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timesheets/7/decision", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorUserID))

	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTimesheetService.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestDecide_ZeroDeciderBecomesNil() {
	actorUserID := int64(9)
	comment := "looks good"
	approved := &domain.Timesheet{
		TimesheetID:     7,
		UserID:          42,
		Kind:            domain.KindTimesheet,
		Status:          domain.StatusApproved,
		DecisionComment: &comment,
	}

	suite.mockTimesheetService.On("Decide",
		mock.Anything, int64(7), 1, &comment, (*int64)(nil),
	).Return(approved, nil).Once()

	body, _ := json.Marshal(dto.DecideTimesheetRequest{StatusCode: 1, Comment: &comment})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timesheets/7/decision", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorUserID))

	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TimesheetResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusApproved, resp.Status)

	suite.mockTimesheetService.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestGetByPeriod_AbsentReturnsNotFound() {
	actorUserID := int64(42)

	suite.mockTimesheetService.On("GetByUserAndPeriod",
		mock.Anything, domain.KindTimesheet, actorUserID, mock.Anything, mock.Anything,
	).Return(nil, nil).Once()

	url := fmt.Sprintf("/api/v1/timesheets/by-period?start=%s&end=%s", "2025-06-01", "2025-06-07")
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorUserID))

	w := suite.serve(req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTimesheetService.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestCreateTimesheet_MissingTokenUnauthorized() {
	body, _ := json.Marshal(dto.CreateTimesheetRequest{
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timesheets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTimesheetService.AssertNotCalled(suite.T(), "Create")
}

// --- Run Test Suite ---
func TestTimesheetHandler(t *testing.T) {
	suite.Run(t, new(TimesheetHandlerTestSuite))
}
