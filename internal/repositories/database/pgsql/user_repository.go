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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool PgxPool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, password_salt, role, manager_id, created_at, last_updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.PasswordSalt,
		&user.Role,
		&user.ManagerID,
		&user.CreatedAt,
		&user.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	defer rows.Close()
	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password_hash, password_salt, role, manager_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id;
	`
	var userID int64
	err := r.Pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		user.Role,
		user.ManagerID,
		user.CreatedAt,
		user.LastUpdatedAt,
	).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
		return 0, fmt.Errorf("failed to save user: %w", err)
	}
	return userID, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name, user_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return scanUsers(rows)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1);`
	return scanUser(r.Pool.QueryRow(ctx, query, email))
}

func (r *PgxUserRepository) FindUsersByManagerID(ctx context.Context, managerID int64) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE manager_id = $1 ORDER BY name, user_id;`
	rows, err := r.Pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by manager: %w", err)
	}
	return scanUsers(rows)
}

func (r *PgxUserRepository) HasDirectReports(ctx context.Context, managerID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE manager_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, managerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check direct reports: %w", err)
	}
	return exists, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, manager_id = $4, last_updated_at = $5
		WHERE user_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Role,
		user.ManagerID,
		user.LastUpdatedAt,
		user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
