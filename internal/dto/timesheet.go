package dto

import (
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// CreateTimesheetRequest is the payload for submitting a timesheet. When
// UserID is zero the handler substitutes the authenticated user.
type CreateTimesheetRequest struct {
	UserID      int64     `json:"userID"`
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// DecideTimesheetRequest is the payload for recording a manager decision.
// StatusCode uses the closed mapping 0 Pending, 1 Approved, 2 Rejected.
// DeciderID zero means "unspecified": the existing decider is left
// untouched.
type DecideTimesheetRequest struct {
	StatusCode int     `json:"statusCode"`
	Comment    *string `json:"comment"`
	DeciderID  int64   `json:"deciderID"`
}

// TimesheetResponse is the API representation of a timesheet.
type TimesheetResponse struct {
	TimesheetID     int64               `json:"timesheetID"`
	UserID          int64               `json:"userID"`
	Kind            domain.ReviewKind   `json:"kind"`
	PeriodStart     time.Time           `json:"periodStart"`
	PeriodEnd       time.Time           `json:"periodEnd"`
	Status          domain.ReviewStatus `json:"status"`
	DecidedByUserID *int64              `json:"decidedByUserID,omitempty"`
	DecidedAt       *time.Time          `json:"decidedAt,omitempty"`
	DecisionComment *string             `json:"decisionComment,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ToTimesheetResponse converts a domain timesheet to its API representation.
func ToTimesheetResponse(t *domain.Timesheet) TimesheetResponse {
	return TimesheetResponse{
		TimesheetID:     t.TimesheetID,
		UserID:          t.UserID,
		Kind:            t.Kind,
		PeriodStart:     t.PeriodStart,
		PeriodEnd:       t.PeriodEnd,
		Status:          t.Status,
		DecidedByUserID: t.DecidedByUserID,
		DecidedAt:       t.DecidedAt,
		DecisionComment: t.DecisionComment,
		CreatedAt:       t.CreatedAt,
	}
}
