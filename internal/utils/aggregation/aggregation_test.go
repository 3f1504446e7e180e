package aggregation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	"github.com/worklog-app/timesheet_backend/internal/utils/aggregation"
)

func detail(userName string, projectID int64, projectName string, date time.Time, hours float64) domain.TimeEntryDetail {
	return domain.TimeEntryDetail{
		TimeEntry: domain.TimeEntry{
			ProjectID: projectID,
			EntryDate: date,
			Hours:     decimal.NewFromFloat(hours),
		},
		UserName:      userName,
		ProjectName:   projectName,
		ProjectStatus: domain.ProjectActive,
	}
}

func TestUserHours_SumsRepeatedProjectDatePairs(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntryDetail{
		detail("Alice", 1, "Backend", day, 3),
		detail("Alice", 1, "Backend", day, 4.5),
		detail("Alice", 1, "Backend", day.AddDate(0, 0, 1), 8),
	}

	result := aggregation.UserHours(entries)

	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].Project.ProjectID)
	assert.True(t, result[0].HoursByDate["2024-03-04"].Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, result[0].HoursByDate["2024-03-05"].Equal(decimal.NewFromInt(8)))
}

func TestUserHours_OrdersProjectsByNameThenID(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntryDetail{
		detail("Alice", 3, "Zeta", day, 1),
		detail("Alice", 7, "Alpha", day, 2),
		detail("Alice", 5, "Alpha", day, 3),
	}

	result := aggregation.UserHours(entries)

	require.Len(t, result, 3)
	assert.Equal(t, int64(5), result[0].Project.ProjectID)
	assert.Equal(t, int64(7), result[1].Project.ProjectID)
	assert.Equal(t, int64(3), result[2].Project.ProjectID)
}

func TestUserHours_EmptyInput(t *testing.T) {
	result := aggregation.UserHours(nil)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestTeamHours_GroupsByUserName(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntryDetail{
		detail("Alice", 1, "Backend", day, 8),
		detail("Bob", 1, "Backend", day, 6),
		detail("Bob", 2, "Frontend", day, 2),
	}

	view := aggregation.TeamHours(entries)

	require.Len(t, view, 2)
	require.Len(t, view["Alice"], 1)
	require.Len(t, view["Bob"], 2)
	assert.True(t, view["Bob"][0].HoursByDate["2024-03-04"].Equal(decimal.NewFromInt(6)))
}

func TestTeamHours_CarriesProjectDescriptor(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntryDetail{
		detail("Alice", 1, "Backend", day, 8),
	}

	view := aggregation.TeamHours(entries)

	ref := view["Alice"][0].Project
	assert.Equal(t, "Backend", ref.Name)
	assert.Equal(t, domain.ProjectActive, ref.Status)
}
