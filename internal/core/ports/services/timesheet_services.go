package services

import (
	"context"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// TimesheetSvcFacade defines the timesheet workflow state machine. The same
// contract serves both review kinds; callers pass the kind tag.
type TimesheetSvcFacade interface {
	// Create submits a new timesheet for the period in Pending status.
	Create(ctx context.Context, kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time, actorUserID int64) (*domain.Timesheet, error)

	// Decide records a manager decision. statusCode is the closed mapping
	// 0 Pending, 1 Approved, 2 Rejected. A nil deciderID leaves the existing
	// decider untouched.
	Decide(ctx context.Context, timesheetID int64, statusCode int, comment *string, deciderID *int64) (*domain.Timesheet, error)

	// GetByUserAndPeriod returns the timesheet for the exact (kind, user,
	// period) tuple, or (nil, nil) when none exists.
	GetByUserAndPeriod(ctx context.Context, kind domain.ReviewKind, userID int64, periodStart, periodEnd time.Time) (*domain.Timesheet, error)

	// ListPendingForLeaderPeriod returns the time entries of pending
	// timesheets of direct reports of leaderID whose period equals
	// [periodStart, periodEnd] exactly.
	ListPendingForLeaderPeriod(ctx context.Context, kind domain.ReviewKind, leaderID int64, periodStart, periodEnd time.Time) ([]domain.TimeEntryDetail, error)
}
