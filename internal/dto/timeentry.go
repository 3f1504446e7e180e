package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// CreateTimeEntryRequest is the payload for logging a single time entry.
// A zero EntryDate is persisted as-is; the service does not substitute the
// current date.
type CreateTimeEntryRequest struct {
	UserID      int64           `json:"userID"`
	ProjectID   int64           `json:"projectID" binding:"required"`
	TimesheetID int64           `json:"timesheetID"`
	EntryDate   time.Time       `json:"entryDate"`
	Note        string          `json:"note"`
	Hours       decimal.Decimal `json:"hours" binding:"required"`
}

// ReplaceEntryItem is one entry in a bulk replacement set.
type ReplaceEntryItem struct {
	UserID    int64           `json:"userID"`
	ProjectID int64           `json:"projectID" binding:"required"`
	EntryDate time.Time       `json:"entryDate"`
	Note      string          `json:"note"`
	Hours     decimal.Decimal `json:"hours" binding:"required"`
}

// ReplaceEntriesRequest is the payload for replacing a timesheet's entries.
type ReplaceEntriesRequest struct {
	Entries []ReplaceEntryItem `json:"entries" binding:"dive"`
}

// TimeEntryResponse is the API representation of a time entry.
type TimeEntryResponse struct {
	EntryID     int64           `json:"entryID"`
	UserID      int64           `json:"userID"`
	ProjectID   int64           `json:"projectID"`
	TimesheetID int64           `json:"timesheetID"`
	EntryDate   time.Time       `json:"entryDate"`
	Note        string          `json:"note"`
	Hours       decimal.Decimal `json:"hours"`
}

// ToTimeEntryResponse converts a domain time entry to its API representation.
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		EntryID:     e.EntryID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		TimesheetID: e.TimesheetID,
		EntryDate:   e.EntryDate,
		Note:        e.Note,
		Hours:       e.Hours,
	}
}

// ToTimeEntryResponses converts a slice of domain time entries.
func ToTimeEntryResponses(entries []domain.TimeEntry) []TimeEntryResponse {
	responses := make([]TimeEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToTimeEntryResponse(&entries[i])
	}
	return responses
}

// TimeEntryDetailResponse is a time entry joined with resolved user and
// project data, as returned by the leader pending view.
type TimeEntryDetailResponse struct {
	TimeEntryResponse
	UserName      string               `json:"userName"`
	ProjectName   string               `json:"projectName"`
	ProjectStatus domain.ProjectStatus `json:"projectStatus"`
}

// ToTimeEntryDetailResponses converts a slice of entry details.
func ToTimeEntryDetailResponses(details []domain.TimeEntryDetail) []TimeEntryDetailResponse {
	responses := make([]TimeEntryDetailResponse, len(details))
	for i, d := range details {
		responses[i] = TimeEntryDetailResponse{
			TimeEntryResponse: ToTimeEntryResponse(&details[i].TimeEntry),
			UserName:          d.UserName,
			ProjectName:       d.ProjectName,
			ProjectStatus:     d.ProjectStatus,
		}
	}
	return responses
}
