package services

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	"github.com/worklog-app/timesheet_backend/internal/dto"
)

// TimeEntrySvcFacade defines the operations of the time entry rules.
type TimeEntrySvcFacade interface {
	// CreateEntry validates and persists a single entry, then records an
	// audit entry tagged with the acting user.
	CreateEntry(ctx context.Context, req *dto.CreateTimeEntryRequest, actorUserID int64) (*domain.TimeEntry, error)

	// ReplaceForTimesheet atomically replaces all entries of a timesheet.
	// The bulk path does not write an audit record.
	ReplaceForTimesheet(ctx context.Context, timesheetID int64, items []dto.ReplaceEntryItem, actorUserID int64) error

	// ListForUser returns a user's entries ordered by date ascending.
	ListForUser(ctx context.Context, userID int64) ([]domain.TimeEntry, error)

	// ListForTimesheet returns the entries of one timesheet for a user,
	// ordered by date ascending.
	ListForTimesheet(ctx context.Context, userID, timesheetID int64) ([]domain.TimeEntry, error)
}
