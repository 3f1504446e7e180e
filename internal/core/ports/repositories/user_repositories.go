package repositories

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUsers retrieves all users ordered by name.
	FindUsers(ctx context.Context) ([]domain.User, error)

	// FindUserByEmail retrieves a user by email, compared case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByManagerID retrieves the direct reports of a manager.
	FindUsersByManagerID(ctx context.Context, managerID int64) ([]domain.User, error)

	// HasDirectReports reports whether any user references managerID as manager.
	HasDirectReports(ctx context.Context, managerID int64) (bool, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user and returns its generated ID.
	SaveUser(ctx context.Context, user domain.User) (int64, error)

	// UpdateUser updates an existing user's details. Credential fields are
	// not touched.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, userID int64) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
