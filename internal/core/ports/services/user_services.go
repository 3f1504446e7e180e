package services

import (
	"context"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	"github.com/worklog-app/timesheet_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListUsersByManagerID retrieves the direct reports of a manager.
	ListUsersByManagerID(ctx context.Context, managerID int64) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser creates a new user after checking the role/manager
	// invariant and email uniqueness.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user, re-applying the same invariants.
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser removes a user unless they are a manager with reports.
	DeleteUser(ctx context.Context, userID int64) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
