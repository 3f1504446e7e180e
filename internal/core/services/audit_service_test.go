package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/core/services"
)

// --- Mock AuditLogRepository ---
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, record domain.AuditLog) (*domain.AuditLog, error) {
	args := m.Called(ctx, record)
	var saved *domain.AuditLog
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.AuditLog)
	}
	return saved, args.Error(1)
}

func (m *MockAuditLogRepository) FindAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	args := m.Called(ctx, filter)
	var records []domain.AuditLog
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.AuditLog)
	}
	return records, args.Error(1)
}

// --- Test Suite ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditLogRepository
	service       portssvc.AuditSvcFacade
	now           time.Time
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditLogRepository)
	suite.now = time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)
	suite.service = services.NewAuditService(suite.mockAuditRepo, services.WithAuditClock(fixedClock{now: suite.now}))
}

func (suite *AuditServiceTestSuite) TestLog_StampsTimestamp() {
	ctx := context.Background()

	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(record domain.AuditLog) bool {
		return record.Action == "TimesheetCreated" &&
			record.EntityType == "Timesheet" &&
			record.CreatedAt.Equal(suite.now)
	})).Return(&domain.AuditLog{AuditID: 9, Action: "TimesheetCreated", CreatedAt: suite.now}, nil).Once()

	record, err := suite.service.Log(ctx, int64Ptr(4), "TimesheetCreated", "Timesheet", int64Ptr(11), nil)

	suite.Require().NoError(err)
	suite.Equal(int64(9), record.AuditID)
	suite.Equal(suite.now, record.CreatedAt)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestLog_MissingAction() {
	ctx := context.Background()

	record, err := suite.service.Log(ctx, nil, "", "Timesheet", nil, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(record)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveAuditLog", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestLog_MissingEntityType() {
	ctx := context.Background()

	record, err := suite.service.Log(ctx, nil, "TimesheetCreated", "", nil, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(record)
}

func (suite *AuditServiceTestSuite) TestQuery_PassesFilterThrough() {
	ctx := context.Background()
	entityType := "Timesheet"
	filter := domain.AuditLogFilter{EntityType: &entityType, ActorUserID: int64Ptr(4)}
	expected := []domain.AuditLog{{AuditID: 2}, {AuditID: 1}}

	suite.mockAuditRepo.On("FindAuditLogs", ctx, filter).Return(expected, nil).Once()

	records, err := suite.service.Query(ctx, filter)

	suite.Require().NoError(err)
	suite.Equal(expected, records)
}

func (suite *AuditServiceTestSuite) TestQuery_EmptyNotNil() {
	ctx := context.Background()

	suite.mockAuditRepo.On("FindAuditLogs", ctx, domain.AuditLogFilter{}).Return(nil, nil).Once()

	records, err := suite.service.Query(ctx, domain.AuditLogFilter{})

	suite.Require().NoError(err)
	suite.NotNil(records)
	suite.Empty(records)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
