package repositories

import (
	"context"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// TimeEntryReader defines read operations for time entry data.
type TimeEntryReader interface {
	// FindEntriesByUserID retrieves a user's entries ordered by date
	// ascending, ties broken by entry ID.
	FindEntriesByUserID(ctx context.Context, userID int64) ([]domain.TimeEntry, error)

	// FindEntriesByTimesheetID retrieves the entries of one timesheet for a
	// user, ordered by date ascending, ties broken by entry ID.
	FindEntriesByTimesheetID(ctx context.Context, userID, timesheetID int64) ([]domain.TimeEntry, error)

	// HasEntriesInPeriod reports whether the user has at least one entry
	// dated within [start, end] inclusive.
	HasEntriesInPeriod(ctx context.Context, userID int64, start, end time.Time) (bool, error)

	// FindEntryDetailsByUserPeriod retrieves a user's entries within
	// [start, end] joined with user and project data, ordered by project
	// name then date.
	FindEntryDetailsByUserPeriod(ctx context.Context, userID int64, start, end time.Time) ([]domain.TimeEntryDetail, error)
}

// TimeEntryWriter defines write operations for time entry data.
type TimeEntryWriter interface {
	// SaveTimeEntry persists a new entry and returns its generated ID.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) (int64, error)

	// ReplaceEntriesForTimesheet atomically deletes all entries of the
	// timesheet and inserts the replacement set. A failure leaves the prior
	// state intact.
	ReplaceEntriesForTimesheet(ctx context.Context, timesheetID int64, entries []domain.TimeEntry) error
}

// TimeEntryRepositoryFacade combines all time-entry repository interfaces.
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}
