package services

import (
	"context"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	"github.com/worklog-app/timesheet_backend/internal/utils/aggregation"
)

// ReportingSvcFacade produces the aggregated hour views for dashboards.
type ReportingSvcFacade interface {
	// TeamHours aggregates the pending entries of a leader's direct reports
	// for the exact period into the nested user/project/date view.
	TeamHours(ctx context.Context, kind domain.ReviewKind, leaderID int64, periodStart, periodEnd time.Time) (aggregation.TeamView, error)

	// MyHours aggregates one user's own entries within the period.
	MyHours(ctx context.Context, userID int64, periodStart, periodEnd time.Time) ([]aggregation.ProjectHours, error)
}
