package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worklog-app/timesheet_backend/internal/apperrors"
	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portsrepo "github.com/worklog-app/timesheet_backend/internal/core/ports/repositories"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool PgxPool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, name, status, created_at, last_updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	err := row.Scan(
		&project.ProjectID,
		&project.Name,
		&project.Status,
		&project.CreatedAt,
		&project.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return &project, nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) (int64, error) {
	query := `
		INSERT INTO projects (name, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING project_id;
	`
	var projectID int64
	err := r.Pool.QueryRow(ctx, query,
		project.Name,
		project.Status,
		project.CreatedAt,
		project.LastUpdatedAt,
	).Scan(&projectID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: project name %s", apperrors.ErrDuplicate, project.Name)
		}
		return 0, fmt.Errorf("failed to save project: %w", err)
	}
	return projectID, nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	return scanProject(r.Pool.QueryRow(ctx, query, projectID))
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name, project_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project rows: %w", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) HasTimeEntries(ctx context.Context, projectID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM time_entries WHERE project_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check project references: %w", err)
	}
	return exists, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $1, status = $2, last_updated_at = $3
		WHERE project_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query,
		project.Name,
		project.Status,
		project.LastUpdatedAt,
		project.ProjectID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: project name %s", apperrors.ErrDuplicate, project.Name)
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM projects WHERE project_id = $1;`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
