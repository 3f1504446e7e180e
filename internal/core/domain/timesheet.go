package domain

import "time"

// ReviewKind distinguishes the two structurally identical review entities.
// They share one state machine; period uniqueness is scoped per kind.
type ReviewKind string

const (
	KindTimesheet     ReviewKind = "TIMESHEET"
	KindMonthlyReview ReviewKind = "MONTHLY_REVIEW"
)

// IsValid reports whether the kind is one of the defined values.
func (k ReviewKind) IsValid() bool {
	return k == KindTimesheet || k == KindMonthlyReview
}

// CreatedAction is the audit action name recorded when a review of this
// kind is submitted.
func (k ReviewKind) CreatedAction() string {
	if k == KindMonthlyReview {
		return "MonthlyReviewCreated"
	}
	return "TimesheetCreated"
}

// DecidedAction is the audit action name recorded when a review of this
// kind receives a decision.
func (k ReviewKind) DecidedAction() string {
	if k == KindMonthlyReview {
		return "MonthlyReviewStatusChanged"
	}
	return "TimesheetStatusChanged"
}

// EntityType is the audit entity type name for this kind.
func (k ReviewKind) EntityType() string {
	if k == KindMonthlyReview {
		return "MonthlyReview"
	}
	return "Timesheet"
}

// ReviewStatus is the state of a timesheet in the approval workflow.
type ReviewStatus string

const (
	StatusDraft    ReviewStatus = "DRAFT"
	StatusPending  ReviewStatus = "PENDING"
	StatusApproved ReviewStatus = "APPROVED"
	StatusRejected ReviewStatus = "REJECTED"
)

// ReviewStatusFromCode converts an untrusted decision code into a status.
// The mapping is closed: 0 Pending, 1 Approved, 2 Rejected. ok is false for
// anything else.
func ReviewStatusFromCode(code int) (ReviewStatus, bool) {
	switch code {
	case 0:
		return StatusPending, true
	case 1:
		return StatusApproved, true
	case 2:
		return StatusRejected, true
	}
	return "", false
}

// Timesheet groups one user's time entries over an inclusive date period and
// carries the manager decision. At most one exists per (kind, user, period).
type Timesheet struct {
	TimesheetID     int64        `json:"timesheetID"`
	UserID          int64        `json:"userID"`
	Kind            ReviewKind   `json:"kind"`
	PeriodStart     time.Time    `json:"periodStart"`
	PeriodEnd       time.Time    `json:"periodEnd"`
	Status          ReviewStatus `json:"status"`
	DecidedByUserID *int64       `json:"decidedByUserID,omitempty"`
	DecidedAt       *time.Time   `json:"decidedAt,omitempty"`
	DecisionComment *string      `json:"decisionComment,omitempty"`
	AuditFields
}
