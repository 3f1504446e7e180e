package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
)

var (
	// ErrDuplicatePeriod is returned when a timesheet already exists for
	// the exact (user, period start, period end) triple.
	ErrDuplicatePeriod = errors.New("timesheet already exists for this period")

	// ErrNoEntriesInPeriod is returned when submitting a timesheet for a
	// period that contains no time entries for the user.
	ErrNoEntriesInPeriod = errors.New("no time entries exist within the period")

	// ErrInvalidStatusCode is returned when a decision status code is
	// outside the closed 0/1/2 mapping.
	ErrInvalidStatusCode = errors.New("status code must be 0, 1 or 2")
)

// timesheetService implements the review workflow state machine for both
// review kinds.
type timesheetService struct {
	BaseService
	timesheetRepo portsrepo.TimesheetRepositoryFacade
	entryRepo     portsrepo.TimeEntryReader
	auditSvc      portssvc.AuditSvcFacade
	clock         Clock
}

// TimesheetServiceOption is a functional option for configuring the timesheet service.
type TimesheetServiceOption func(*timesheetService)

// WithTimesheetClock sets the clock used for decision and audit timestamps.
func WithTimesheetClock(c Clock) TimesheetServiceOption {
	return func(s *timesheetService) {
		s.clock = c
	}
}

// NewTimesheetService creates a new timesheet workflow service.
func NewTimesheetService(
	timesheetRepo portsrepo.TimesheetRepositoryFacade,
	entryRepo portsrepo.TimeEntryReader,
	auditSvc portssvc.AuditSvcFacade,
	options ...TimesheetServiceOption,
) portssvc.TimesheetSvcFacade {
	svc := &timesheetService{
		timesheetRepo: timesheetRepo,
		entryRepo:     entryRepo,
		auditSvc:      auditSvc,
		clock:         SystemClock(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TimesheetSvcFacade = (*timesheetService)(nil)

func validatePeriod(kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown review kind %q", apperrors.ErrValidation, kind)
	}
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}
	if periodStart.After(periodEnd) {
		return fmt.Errorf("%w: period start must not be after period end", apperrors.ErrValidation)
	}
	return nil
}

// Create submits a new timesheet for the period. The existence pre-check
// is best effort; the storage layer's uniqueness constraint is the final
// arbiter under concurrent submission, so a duplicate surfacing from the
// save is mapped the same way.
func (s *timesheetService) Create(ctx context.Context, kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time, actorUserID int64) (*domain.Timesheet, error) {
	if err := validatePeriod(kind, userID, periodStart, periodEnd); err != nil {
		return nil, err
	}

	exists, err := s.timesheetRepo.ExistsForPeriod(ctx, kind, userID, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period uniqueness", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to check period uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: user %d", ErrDuplicatePeriod, userID)
	}

	hasEntries, err := s.entryRepo.HasEntriesInPeriod(ctx, userID, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to check entries in period", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to check entries in period: %w", err)
	}
	if !hasEntries {
		return nil, fmt.Errorf("%w: user %d", ErrNoEntriesInPeriod, userID)
	}

	now := s.clock.Now()
	sheet := domain.Timesheet{
		UserID:      userID,
		Kind:        kind,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      domain.StatusDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	sheet.Status = domain.StatusPending

	timesheetID, err := s.timesheetRepo.SaveTimesheet(ctx, sheet)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user %d", ErrDuplicatePeriod, userID)
		}
		s.LogError(ctx, err, "Failed to save timesheet", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to save timesheet: %w", err)
	}
	sheet.TimesheetID = timesheetID

	if _, err := s.auditSvc.Log(ctx, &actorUserID, kind.CreatedAction(), kind.EntityType(), &timesheetID, nil); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", slog.Int64("timesheet_id", timesheetID))
	}

	s.LogInfo(ctx, "Timesheet submitted",
		slog.Int64("timesheet_id", timesheetID),
		slog.Int64("user_id", userID),
		slog.String("kind", string(kind)))
	return &sheet, nil
}

// Decide records a manager decision on a timesheet. The comment is stored
// verbatim, including nil. An invalid status code leaves the timesheet and
// the audit trail untouched.
func (s *timesheetService) Decide(ctx context.Context, timesheetID int64, statusCode int, comment *string, deciderID *int64) (*domain.Timesheet, error) {
	if timesheetID <= 0 {
		return nil, fmt.Errorf("%w: timesheet id must be positive", apperrors.ErrValidation)
	}

	sheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find timesheet for decision", slog.Int64("timesheet_id", timesheetID))
		}
		return nil, err
	}

	status, ok := domain.ReviewStatusFromCode(statusCode)
	if !ok {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStatusCode, statusCode)
	}

	now := s.clock.Now()
	sheet.Status = status
	if deciderID != nil {
		sheet.DecidedByUserID = deciderID
	}
	sheet.DecidedAt = &now
	sheet.DecisionComment = comment
	sheet.LastUpdatedAt = now

	if err := s.timesheetRepo.UpdateTimesheet(ctx, *sheet); err != nil {
		s.LogError(ctx, err, "Failed to update timesheet decision", slog.Int64("timesheet_id", timesheetID))
		return nil, fmt.Errorf("failed to update timesheet decision: %w", err)
	}

	if _, err := s.auditSvc.Log(ctx, deciderID, sheet.Kind.DecidedAction(), sheet.Kind.EntityType(), &timesheetID, comment); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", slog.Int64("timesheet_id", timesheetID))
	}

	s.LogInfo(ctx, "Timesheet decision recorded",
		slog.Int64("timesheet_id", timesheetID),
		slog.String("status", string(status)))
	return sheet, nil
}

// GetByUserAndPeriod returns the timesheet for the exact period tuple, or
// (nil, nil) when no timesheet exists for it.
func (s *timesheetService) GetByUserAndPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time) (*domain.Timesheet, error) {
	if err := validatePeriod(kind, userID, periodStart, periodEnd); err != nil {
		return nil, err
	}

	sheet, err := s.timesheetRepo.FindByUserAndPeriod(ctx, kind, userID, periodStart, periodEnd)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to find timesheet by period", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to find timesheet by period: %w", err)
	}
	return sheet, nil
}

// ListPendingForLeaderPeriod returns the entries of pending timesheets of
// the leader's direct reports whose period matches exactly.
func (s *timesheetService) ListPendingForLeaderPeriod(ctx context.Context, kind domain.ReviewKind, leaderID int64, periodStart, periodEnd time.Time) ([]domain.TimeEntryDetail, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown review kind %q", apperrors.ErrValidation, kind)
	}
	if leaderID <= 0 {
		return nil, fmt.Errorf("%w: leader id must be positive", apperrors.ErrValidation)
	}

	details, err := s.timesheetRepo.FindPendingEntryDetails(ctx, kind, leaderID, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending entries", slog.Int64("leader_id", leaderID))
		return nil, fmt.Errorf("failed to list pending entries: %w", err)
	}
	if details == nil {
		details = []domain.TimeEntryDetail{}
	}
	return details, nil
}
