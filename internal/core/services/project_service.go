package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/dto"
)

// ErrProjectHasEntries is returned when deleting a project that time
// entries still reference.
var ErrProjectHasEntries = errors.New("project is referenced by time entries")

// projectService implements the project registry rules.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	clock       Clock
}

// ProjectServiceOption is a functional option for configuring the project service.
type ProjectServiceOption func(*projectService)

// WithProjectClock sets the clock used for audit timestamps.
func WithProjectClock(c Clock) ProjectServiceOption {
	return func(s *projectService) {
		s.clock = c
	}
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, options ...ProjectServiceOption) portssvc.ProjectSvcFacade {
	svc := &projectService{
		projectRepo: projectRepo,
		clock:       SystemClock(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func validateProjectFields(name string, status domain.ProjectStatus) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: project name must not be blank", apperrors.ErrValidation)
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, status)
	}
	return nil
}

// CreateProject creates a new project.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	if err := validateProjectFields(req.Name, req.Status); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	project := domain.Project{
		Name:   strings.TrimSpace(req.Name),
		Status: req.Status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	projectID, err := s.projectRepo.SaveProject(ctx, project)
	if err != nil {
		s.LogError(ctx, err, "Failed to save project")
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	project.ProjectID = projectID

	s.LogInfo(ctx, "Project created successfully", slog.Int64("project_id", projectID))
	return &project, nil
}

// UpdateProject updates an existing project.
func (s *projectService) UpdateProject(ctx context.Context, projectID int64, req dto.UpdateProjectRequest) (*domain.Project, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("%w: project id must be positive", apperrors.ErrValidation)
	}
	if err := validateProjectFields(req.Name, req.Status); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project for update", slog.Int64("project_id", projectID))
		}
		return nil, err
	}

	project.Name = strings.TrimSpace(req.Name)
	project.Status = req.Status
	project.LastUpdatedAt = s.clock.Now()

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.Int64("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.LogInfo(ctx, "Project updated successfully", slog.Int64("project_id", projectID))
	return project, nil
}

// DeleteProject removes a project. Projects referenced by any time entry
// cannot be deleted, regardless of the owning timesheet's status.
func (s *projectService) DeleteProject(ctx context.Context, projectID int64) error {
	if projectID <= 0 {
		return fmt.Errorf("%w: project id must be positive", apperrors.ErrValidation)
	}

	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project for deletion", slog.Int64("project_id", projectID))
		}
		return err
	}

	hasEntries, err := s.projectRepo.HasTimeEntries(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check project references", slog.Int64("project_id", projectID))
		return fmt.Errorf("failed to check project references: %w", err)
	}
	if hasEntries {
		return fmt.Errorf("%w: project %d", ErrProjectHasEntries, projectID)
	}

	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.Int64("project_id", projectID))
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.LogInfo(ctx, "Project deleted successfully", slog.Int64("project_id", projectID))
	return nil
}

// GetProjectByID retrieves a project by ID.
func (s *projectService) GetProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("%w: project id must be positive", apperrors.ErrValidation)
	}
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get project by ID", slog.Int64("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves all projects.
func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.FindProjects(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}
