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
	"github.com/worklog-app/timesheet_backend/internal/utils"
)

var (
	// ErrRoleInvariant is returned when the role/manager combination is
	// invalid: an Employee without a manager, or a Manager/Admin with one.
	ErrRoleInvariant = errors.New("role and manager reference combination is invalid")

	// ErrDuplicateEmail is returned when another user already owns the
	// email, compared case-insensitively.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrManagerHasReports is returned when deleting a manager who still
	// has direct reports.
	ErrManagerHasReports = errors.New("manager still has direct reports")
)

// userService enforces the identity and hierarchy rules.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	clock    Clock
}

// UserServiceOption is a functional option for configuring the user service.
type UserServiceOption func(*userService)

// WithUserClock sets the clock used for audit timestamps.
func WithUserClock(c Clock) UserServiceOption {
	return func(s *userService) {
		s.clock = c
	}
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo: userRepo,
		clock:    SystemClock(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// validateRoleManager enforces the one-level hierarchy invariant:
// Employee requires a manager reference, Manager and Admin forbid one.
func validateRoleManager(role domain.UserRole, managerID *int64) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	switch role {
	case domain.RoleEmployee:
		if managerID == nil {
			return fmt.Errorf("%w: employee requires a manager", ErrRoleInvariant)
		}
	case domain.RoleManager, domain.RoleAdmin:
		if managerID != nil {
			return fmt.Errorf("%w: %s must not reference a manager", ErrRoleInvariant, role)
		}
	}
	return nil
}

// CreateUser creates a new user after checking the role/manager invariant
// and email uniqueness.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if err := validateRoleManager(req.Role, req.ManagerID); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email uniqueness", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, req.Email)
	}

	hash, salt, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := domain.User{
		Name:         req.Name,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         req.Role,
		ManagerID:    req.ManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	userID, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	user.UserID = userID

	s.LogInfo(ctx, "User created successfully", slog.Int64("user_id", userID), slog.String("role", string(user.Role)))
	return &user, nil
}

// UpdateUser updates an existing user, re-applying the role/manager
// invariant and re-checking email uniqueness against all other users.
// Credential fields are not touched.
func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}
	if err := validateRoleManager(req.Role, req.ManagerID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user for update", slog.Int64("user_id", userID))
		}
		return nil, err
	}

	owner, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email uniqueness", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if owner != nil && owner.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, req.Email)
	}

	user.Name = req.Name
	user.Email = strings.TrimSpace(req.Email)
	user.Role = req.Role
	user.ManagerID = req.ManagerID
	user.LastUpdatedAt = s.clock.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated successfully", slog.Int64("user_id", userID))
	return user, nil
}

// DeleteUser removes a user. A Manager with direct reports cannot be
// deleted until the reports are reassigned or removed.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user for deletion", slog.Int64("user_id", userID))
		}
		return err
	}

	if user.IsManager() {
		hasReports, err := s.userRepo.HasDirectReports(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check direct reports", slog.Int64("user_id", userID))
			return fmt.Errorf("failed to check direct reports: %w", err)
		}
		if hasReports {
			return fmt.Errorf("%w: user %d", ErrManagerHasReports, userID)
		}
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.Int64("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.LogInfo(ctx, "User deleted successfully", slog.Int64("user_id", userID))
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves all users.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// ListUsersByManagerID retrieves the direct reports of a manager.
func (s *userService) ListUsersByManagerID(ctx context.Context, managerID int64) ([]domain.User, error) {
	if managerID <= 0 {
		return nil, fmt.Errorf("%w: manager id must be positive", apperrors.ErrValidation)
	}
	users, err := s.userRepo.FindUsersByManagerID(ctx, managerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users by manager", slog.Int64("manager_id", managerID))
		return nil, fmt.Errorf("failed to list users by manager: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// AuthenticateUser authenticates a user by email and password. Unknown
// emails and wrong passwords fail identically to avoid account probing.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find user for authentication")
		return nil, fmt.Errorf("failed to find user for authentication: %w", err)
	}

	if !utils.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		s.LogWarn(ctx, "Password verification failed", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
