package repositories

import (
	"context"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// TimesheetReader defines read operations for timesheet data.
type TimesheetReader interface {
	// FindTimesheetByID retrieves a specific timesheet by its ID.
	FindTimesheetByID(ctx context.Context, timesheetID int64) (*domain.Timesheet, error)

	// ExistsForPeriod reports whether a timesheet of the given kind already
	// exists for the exact (user, start, end) triple.
	ExistsForPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, start, end time.Time) (bool, error)

	// FindByUserAndPeriod retrieves the timesheet matching the exact
	// (kind, user, start, end) tuple.
	FindByUserAndPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, start, end time.Time) (*domain.Timesheet, error)

	// FindPendingEntryDetails retrieves the time entries of pending
	// timesheets of the given kind belonging to direct reports of leaderID,
	// restricted to timesheets whose period equals [start, end] exactly,
	// ordered by user name, project name, then entry date.
	FindPendingEntryDetails(ctx context.Context, kind domain.ReviewKind, leaderID int64, start, end time.Time) ([]domain.TimeEntryDetail, error)
}

// TimesheetWriter defines write operations for timesheet data.
type TimesheetWriter interface {
	// SaveTimesheet persists a new timesheet and returns its generated ID.
	// The storage layer enforces (kind, user, period) uniqueness and is the
	// final arbiter under concurrent submission.
	SaveTimesheet(ctx context.Context, sheet domain.Timesheet) (int64, error)

	// UpdateTimesheet updates an existing timesheet's decision fields.
	UpdateTimesheet(ctx context.Context, sheet domain.Timesheet) error
}

// TimesheetRepositoryFacade combines all timesheet repository interfaces.
type TimesheetRepositoryFacade interface {
	TimesheetReader
	TimesheetWriter
}
