package repositories

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID int64) (*domain.Project, error)

	// FindProjects retrieves all projects ordered by name.
	FindProjects(ctx context.Context) ([]domain.Project, error)

	// HasTimeEntries reports whether any time entry references the project.
	HasTimeEntries(ctx context.Context, projectID int64) (bool, error)
}

// ProjectWriter defines write operations for project data.
type ProjectWriter interface {
	// SaveProject persists a new project and returns its generated ID.
	SaveProject(ctx context.Context, project domain.Project) (int64, error)

	// UpdateProject updates an existing project.
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeleteProject removes a project.
	DeleteProject(ctx context.Context, projectID int64) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
