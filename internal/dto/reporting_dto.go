package dto

import (
	"github.com/shopspring/decimal"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	"github.com/worklog-app/timesheet_backend/internal/utils/aggregation"
)

// ProjectHoursResponse is one project's date-to-hours breakdown.
type ProjectHoursResponse struct {
	ProjectID   int64                      `json:"projectID"`
	ProjectName string                     `json:"projectName"`
	Status      domain.ProjectStatus       `json:"status"`
	HoursByDate map[string]decimal.Decimal `json:"hoursByDate"`
}

// TeamHoursResponse maps user display names to their project breakdowns.
type TeamHoursResponse struct {
	PeriodStart string                            `json:"periodStart"`
	PeriodEnd   string                            `json:"periodEnd"`
	Users       map[string][]ProjectHoursResponse `json:"users"`
}

// ToProjectHoursResponses converts aggregated project hours.
func ToProjectHoursResponses(hours []aggregation.ProjectHours) []ProjectHoursResponse {
	responses := make([]ProjectHoursResponse, len(hours))
	for i, ph := range hours {
		responses[i] = ProjectHoursResponse{
			ProjectID:   ph.Project.ProjectID,
			ProjectName: ph.Project.Name,
			Status:      ph.Project.Status,
			HoursByDate: ph.HoursByDate,
		}
	}
	return responses
}

// ToTeamHoursResponse converts an aggregated team view.
func ToTeamHoursResponse(view aggregation.TeamView, periodStart, periodEnd string) TeamHoursResponse {
	users := make(map[string][]ProjectHoursResponse, len(view))
	for name, hours := range view {
		users[name] = ToProjectHoursResponses(hours)
	}
	return TeamHoursResponse{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Users:       users,
	}
}
