package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/core/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
)

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	MockTimeEntryReader
}

func (m *MockTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimeEntryRepository) ReplaceEntriesForTimesheet(ctx context.Context, timesheetID int64, entries []domain.TimeEntry) error {
	args := m.Called(ctx, timesheetID, entries)
	return args.Error(0)
}

// --- Mock ProjectReader ---
type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) FindProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectReader) FindProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Error(1)
}

func (m *MockProjectReader) HasTimeEntries(ctx context.Context, projectID int64) (bool, error) {
	args := m.Called(ctx, projectID)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---
type TimeEntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockTimeEntryRepository
	mockProjectRepo *MockProjectReader
	mockAuditSvc    *MockAuditService
	service         portssvc.TimeEntrySvcFacade
	now             time.Time
}

func (suite *TimeEntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockTimeEntryRepository)
	suite.mockProjectRepo = new(MockProjectReader)
	suite.mockAuditSvc = new(MockAuditService)
	suite.now = time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)
	suite.service = services.NewTimeEntryService(
		suite.mockEntryRepo,
		suite.mockProjectRepo,
		suite.mockAuditSvc,
		services.WithTimeEntryClock(fixedClock{now: suite.now}),
	)
}

// --- CreateEntry Tests ---
func (suite *TimeEntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{
		UserID:      4,
		ProjectID:   2,
		TimesheetID: 11,
		EntryDate:   time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		Note:        "backend work",
		Hours:       decimal.NewFromFloat(7.5),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(2)).Return(&domain.Project{ProjectID: 2}, nil).Once()
	suite.mockEntryRepo.On("SaveTimeEntry", ctx, mock.MatchedBy(func(entry domain.TimeEntry) bool {
		return entry.UserID == 4 && entry.ProjectID == 2 && entry.TimesheetID == 11 &&
			entry.Hours.Equal(decimal.NewFromFloat(7.5)) &&
			entry.CreatedAt.Equal(suite.now)
	})).Return(int64(31), nil).Once()
	suite.mockAuditSvc.On("Log", ctx, int64Ptr(4), "TimeEntryCreated", "TimeEntry", int64Ptr(31), (*string)(nil)).
		Return(&domain.AuditLog{AuditID: 1}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().NoError(err)
	suite.Equal(int64(31), entry.EntryID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_NilRequest() {
	ctx := context.Background()

	entry, err := suite.service.CreateEntry(ctx, nil, 4)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_ProjectMissing() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{UserID: 4, ProjectID: 99, Hours: decimal.NewFromInt(8)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProjectNotFound)
	suite.Nil(entry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_ZeroHours() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{UserID: 4, ProjectID: 2, Hours: decimal.Zero}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(2)).Return(&domain.Project{ProjectID: 2}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrHoursOutOfRange)
	suite.Nil(entry)
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_HoursAboveLimit() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{UserID: 4, ProjectID: 2, Hours: decimal.NewFromFloat(24.5)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(2)).Return(&domain.Project{ProjectID: 2}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrHoursOutOfRange)
	suite.Nil(entry)
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_ExactlyTwentyFourHours() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{UserID: 4, ProjectID: 2, Hours: decimal.NewFromInt(24)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(2)).Return(&domain.Project{ProjectID: 2}, nil).Once()
	suite.mockEntryRepo.On("SaveTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(int64(32), nil).Once()
	suite.mockAuditSvc.On("Log", ctx, int64Ptr(4), "TimeEntryCreated", "TimeEntry", int64Ptr(32), (*string)(nil)).
		Return(&domain.AuditLog{AuditID: 2}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_ZeroDatePersistedAsIs() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{UserID: 4, ProjectID: 2, Hours: decimal.NewFromInt(8)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(2)).Return(&domain.Project{ProjectID: 2}, nil).Once()
	suite.mockEntryRepo.On("SaveTimeEntry", ctx, mock.MatchedBy(func(entry domain.TimeEntry) bool {
		return entry.EntryDate.IsZero()
	})).Return(int64(33), nil).Once()
	suite.mockAuditSvc.On("Log", ctx, int64Ptr(4), "TimeEntryCreated", "TimeEntry", int64Ptr(33), (*string)(nil)).
		Return(&domain.AuditLog{AuditID: 3}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().NoError(err)
	suite.True(entry.EntryDate.IsZero())
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_AuditFailureDoesNotFailCreate() {
	ctx := context.Background()
	req := &dto.CreateTimeEntryRequest{UserID: 4, ProjectID: 2, Hours: decimal.NewFromInt(6)}

	suite.mockProjectRepo.On("FindProjectByID", ctx, int64(2)).Return(&domain.Project{ProjectID: 2}, nil).Once()
	suite.mockEntryRepo.On("SaveTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(int64(34), nil).Once()
	suite.mockAuditSvc.On("Log", ctx, int64Ptr(4), "TimeEntryCreated", "TimeEntry", int64Ptr(34), (*string)(nil)).
		Return(nil, assert.AnError).Once()

	entry, err := suite.service.CreateEntry(ctx, req, 4)

	suite.Require().NoError(err)
	suite.Equal(int64(34), entry.EntryID)
}

// --- ReplaceForTimesheet Tests ---
func (suite *TimeEntryServiceTestSuite) TestReplaceForTimesheet_Success() {
	ctx := context.Background()
	items := []dto.ReplaceEntryItem{
		{UserID: 4, ProjectID: 2, EntryDate: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), Hours: decimal.NewFromInt(8)},
		{UserID: 4, ProjectID: 3, EntryDate: time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC), Hours: decimal.NewFromInt(4)},
	}

	suite.mockEntryRepo.On("ReplaceEntriesForTimesheet", ctx, int64(11), mock.MatchedBy(func(entries []domain.TimeEntry) bool {
		if len(entries) != 2 {
			return false
		}
		return entries[0].TimesheetID == 11 && entries[1].TimesheetID == 11
	})).Return(nil).Once()

	err := suite.service.ReplaceForTimesheet(ctx, 11, items, 4)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestReplaceForTimesheet_InvalidID() {
	ctx := context.Background()

	err := suite.service.ReplaceForTimesheet(ctx, 0, nil, 4)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceEntriesForTimesheet", mock.Anything, mock.Anything, mock.Anything)
}

// --- List Tests ---
func (suite *TimeEntryServiceTestSuite) TestListForUser_InvalidID() {
	ctx := context.Background()

	entries, err := suite.service.ListForUser(ctx, -3)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entries)
}

func (suite *TimeEntryServiceTestSuite) TestListForTimesheet_EmptyNotNil() {
	ctx := context.Background()

	suite.mockEntryRepo.On("FindEntriesByTimesheetID", ctx, int64(4), int64(11)).Return(nil, nil).Once()

	entries, err := suite.service.ListForTimesheet(ctx, 4, 11)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
}

func TestTimeEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
