package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/utils/aggregation"
)

// reportingService builds the aggregated hour views served to dashboards.
type reportingService struct {
	BaseService
	timesheetSvc portssvc.TimesheetSvcFacade
	entryRepo    portsrepo.TimeEntryReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(timesheetSvc portssvc.TimesheetSvcFacade, entryRepo portsrepo.TimeEntryReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		timesheetSvc: timesheetSvc,
		entryRepo:    entryRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TeamHours aggregates the pending entries of a leader's direct reports
// for the exact period into the nested user/project/date view.
func (s *reportingService) TeamHours(ctx context.Context, kind domain.ReviewKind, leaderID int64, periodStart, periodEnd time.Time) (aggregation.TeamView, error) {
	details, err := s.timesheetSvc.ListPendingForLeaderPeriod(ctx, kind, leaderID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	return aggregation.TeamHours(details), nil
}

// MyHours aggregates one user's own entries within the period.
func (s *reportingService) MyHours(ctx context.Context, userID int64, periodStart, periodEnd time.Time) ([]aggregation.ProjectHours, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}
	if periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period start must not be after period end", apperrors.ErrValidation)
	}

	details, err := s.entryRepo.FindEntryDetailsByUserPeriod(ctx, userID, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry details", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to load entry details: %w", err)
	}
	return aggregation.UserHours(details), nil
}
