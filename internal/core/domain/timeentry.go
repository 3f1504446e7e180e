package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry records hours worked by one user on one project on one date.
// Entries are never updated in place; a timesheet's entries are replaced
// wholesale when they change. TimesheetID is zero until the entry is
// attached to a timesheet; storage keeps unattached entries as NULL.
type TimeEntry struct {
	EntryID     int64           `json:"entryID"`
	UserID      int64           `json:"userID"`
	ProjectID   int64           `json:"projectID"`
	TimesheetID int64           `json:"timesheetID"`
	EntryDate   time.Time       `json:"entryDate"`
	Note        string          `json:"note"`
	Hours       decimal.Decimal `json:"hours"` // 0 < hours <= 24
	AuditFields
}

// TimeEntryDetail is a TimeEntry joined with the resolved user and project,
// as consumed by the leader/team and self-report views.
type TimeEntryDetail struct {
	TimeEntry
	UserName      string        `json:"userName"`
	ProjectName   string        `json:"projectName"`
	ProjectStatus ProjectStatus `json:"projectStatus"`
}

// MaxEntryHours is the inclusive upper bound for a single entry.
var MaxEntryHours = decimal.NewFromInt(24)
