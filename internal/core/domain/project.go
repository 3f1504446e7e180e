package domain

// ProjectStatus indicates the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectPaused    ProjectStatus = "PAUSED"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectArchived  ProjectStatus = "ARCHIVED"
)

// IsValid reports whether the status is one of the defined values.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectActive, ProjectPaused, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// Project is a unit of work that time entries are booked against.
type Project struct {
	ProjectID int64         `json:"projectID"`
	Name      string        `json:"name"` // required, unique
	Status    ProjectStatus `json:"status"`
	AuditFields
}
