package dto

import (
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name   string               `json:"name" binding:"required"`
	Status domain.ProjectStatus `json:"status" binding:"required,projectstatus"`
}

// UpdateProjectRequest is the payload for updating a project.
type UpdateProjectRequest struct {
	Name   string               `json:"name" binding:"required"`
	Status domain.ProjectStatus `json:"status" binding:"required,projectstatus"`
}

// ProjectResponse is the API representation of a project.
type ProjectResponse struct {
	ProjectID int64                `json:"projectID"`
	Name      string               `json:"name"`
	Status    domain.ProjectStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ToProjectResponse converts a domain project to its API representation.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID: p.ProjectID,
		Name:      p.Name,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

// ToProjectResponses converts a slice of domain projects.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}
