package services

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	"github.com/worklog-app/timesheet_backend/internal/dto"
)

// ProjectSvcFacade defines the operations of the project registry.
type ProjectSvcFacade interface {
	// CreateProject creates a new project after validating name and status.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error)

	// UpdateProject updates an existing project with the same validation.
	UpdateProject(ctx context.Context, projectID int64, req dto.UpdateProjectRequest) (*domain.Project, error)

	// DeleteProject removes a project unless time entries reference it.
	DeleteProject(ctx context.Context, projectID int64) error

	// GetProjectByID retrieves a project by ID.
	GetProjectByID(ctx context.Context, projectID int64) (*domain.Project, error)

	// ListProjects retrieves all projects.
	ListProjects(ctx context.Context) ([]domain.Project, error)
}
