// Package aggregation reshapes flat time entry collections into the nested
// per-user, per-project, per-date hour views used by leader and employee
// dashboards. Functions here are pure: no I/O, no domain errors; input with
// unresolved user or project data is a caller precondition violation.
package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// DateKeyFormat is the layout used for date keys in hour maps.
const DateKeyFormat = "2006-01-02"

// ProjectRef identifies a project within an aggregated view.
type ProjectRef struct {
	ProjectID int64                `json:"projectID"`
	Name      string               `json:"name"`
	Status    domain.ProjectStatus `json:"status"`
}

// ProjectHours maps dates (YYYY-MM-DD) to summed hours for one project.
type ProjectHours struct {
	Project     ProjectRef                 `json:"project"`
	HoursByDate map[string]decimal.Decimal `json:"hoursByDate"`
}

// TeamView maps a user display name to that user's per-project hour
// breakdown, with projects ordered by name.
type TeamView map[string][]ProjectHours

// TeamHours groups entries by user, then project, then date. Hours for
// repeated (project, date) pairs are summed, never overwritten.
func TeamHours(entries []domain.TimeEntryDetail) TeamView {
	view := make(TeamView)
	byUser := make(map[string][]domain.TimeEntryDetail)
	for _, e := range entries {
		byUser[e.UserName] = append(byUser[e.UserName], e)
	}
	for name, userEntries := range byUser {
		view[name] = UserHours(userEntries)
	}
	return view
}

// UserHours groups one user's entries by project then date, with projects
// ordered by name (ties broken by project ID).
func UserHours(entries []domain.TimeEntryDetail) []ProjectHours {
	byProject := make(map[int64]*ProjectHours)
	for _, e := range entries {
		ph, ok := byProject[e.ProjectID]
		if !ok {
			ph = &ProjectHours{
				Project: ProjectRef{
					ProjectID: e.ProjectID,
					Name:      e.ProjectName,
					Status:    e.ProjectStatus,
				},
				HoursByDate: make(map[string]decimal.Decimal),
			}
			byProject[e.ProjectID] = ph
		}
		key := e.EntryDate.Format(DateKeyFormat)
		ph.HoursByDate[key] = ph.HoursByDate[key].Add(e.Hours)
	}

	result := make([]ProjectHours, 0, len(byProject))
	for _, ph := range byProject {
		result = append(result, *ph)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Project.Name != result[j].Project.Name {
			return result[i].Project.Name < result[j].Project.Name
		}
		return result[i].Project.ProjectID < result[j].Project.ProjectID
	})
	return result
}
