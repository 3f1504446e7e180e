package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
)

var (
	// ErrProjectNotFound is returned when an entry references a project
	// that does not exist.
	ErrProjectNotFound = errors.New("referenced project does not exist")

	// ErrHoursOutOfRange is returned when entry hours fall outside the
	// half-open (0, 24] range.
	ErrHoursOutOfRange = errors.New("hours must be greater than 0 and at most 24")
)

// timeEntryService implements the time entry rules.
type timeEntryService struct {
	BaseService
	entryRepo   portsrepo.TimeEntryRepositoryFacade
	projectRepo portsrepo.ProjectReader
	auditSvc    portssvc.AuditSvcFacade
	clock       Clock
}

// TimeEntryServiceOption is a functional option for configuring the time entry service.
type TimeEntryServiceOption func(*timeEntryService)

// WithTimeEntryClock sets the clock used for audit timestamps.
func WithTimeEntryClock(c Clock) TimeEntryServiceOption {
	return func(s *timeEntryService) {
		s.clock = c
	}
}

// NewTimeEntryService creates a new time entry service.
func NewTimeEntryService(
	entryRepo portsrepo.TimeEntryRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	auditSvc portssvc.AuditSvcFacade,
	options ...TimeEntryServiceOption,
) portssvc.TimeEntrySvcFacade {
	svc := &timeEntryService{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		auditSvc:    auditSvc,
		clock:       SystemClock(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

func validateHours(hours domain.TimeEntry) error {
	if !hours.Hours.IsPositive() || hours.Hours.GreaterThan(domain.MaxEntryHours) {
		return fmt.Errorf("%w: got %s", ErrHoursOutOfRange, hours.Hours)
	}
	return nil
}

// CreateEntry validates and persists a single time entry. A zero entry
// date is persisted unchanged; the current date is never substituted.
func (s *timeEntryService) CreateEntry(ctx context.Context, req *dto.CreateTimeEntryRequest, actorUserID int64) (*domain.TimeEntry, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: entry payload is required", apperrors.ErrValidation)
	}

	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrProjectNotFound, req.ProjectID)
		}
		s.LogError(ctx, err, "Failed to check project existence", slog.Int64("project_id", req.ProjectID))
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}

	now := s.clock.Now()
	entry := domain.TimeEntry{
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
		TimesheetID: req.TimesheetID,
		EntryDate:   req.EntryDate,
		Note:        req.Note,
		Hours:       req.Hours,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := validateHours(entry); err != nil {
		return nil, err
	}

	entryID, err := s.entryRepo.SaveTimeEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to save time entry")
		return nil, fmt.Errorf("failed to save time entry: %w", err)
	}
	entry.EntryID = entryID

	if _, err := s.auditSvc.Log(ctx, &actorUserID, "TimeEntryCreated", "TimeEntry", &entryID, nil); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", slog.Int64("entry_id", entryID))
	}

	s.LogInfo(ctx, "Time entry created successfully", slog.Int64("entry_id", entryID), slog.Int64("user_id", entry.UserID))
	return &entry, nil
}

// ReplaceForTimesheet atomically swaps the full entry set of a timesheet.
// This bulk path emits no audit record.
func (s *timeEntryService) ReplaceForTimesheet(ctx context.Context, timesheetID int64, items []dto.ReplaceEntryItem, actorUserID int64) error {
	if timesheetID <= 0 {
		return fmt.Errorf("%w: timesheet id must be positive", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	entries := make([]domain.TimeEntry, len(items))
	for i, item := range items {
		entries[i] = domain.TimeEntry{
			UserID:      item.UserID,
			ProjectID:   item.ProjectID,
			TimesheetID: timesheetID,
			EntryDate:   item.EntryDate,
			Note:        item.Note,
			Hours:       item.Hours,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}

	if err := s.entryRepo.ReplaceEntriesForTimesheet(ctx, timesheetID, entries); err != nil {
		s.LogError(ctx, err, "Failed to replace timesheet entries", slog.Int64("timesheet_id", timesheetID))
		return fmt.Errorf("failed to replace timesheet entries: %w", err)
	}

	s.LogInfo(ctx, "Timesheet entries replaced",
		slog.Int64("timesheet_id", timesheetID),
		slog.Int("entry_count", len(entries)),
		slog.Int64("actor_user_id", actorUserID))
	return nil
}

// ListForUser returns all entries of a user, oldest date first.
func (s *timeEntryService) ListForUser(ctx context.Context, userID int64) ([]domain.TimeEntry, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}
	entries, err := s.entryRepo.FindEntriesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list time entries", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	return entries, nil
}

// ListForTimesheet returns the entries of one timesheet for a user,
// oldest date first.
func (s *timeEntryService) ListForTimesheet(ctx context.Context, userID, timesheetID int64) ([]domain.TimeEntry, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}
	if timesheetID <= 0 {
		return nil, fmt.Errorf("%w: timesheet id must be positive", apperrors.ErrValidation)
	}
	entries, err := s.entryRepo.FindEntriesByTimesheetID(ctx, userID, timesheetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list timesheet entries", slog.Int64("timesheet_id", timesheetID))
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	return entries, nil
}
