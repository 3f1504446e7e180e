package dto

import (
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Name      string          `json:"name" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	Role      domain.UserRole `json:"role" binding:"required,userrole"`
	ManagerID *int64          `json:"managerID"`
}

// UpdateUserRequest is the payload for updating a user. Credential fields
// are never updated through this request.
type UpdateUserRequest struct {
	Name      string          `json:"name" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Role      domain.UserRole `json:"role" binding:"required,userrole"`
	ManagerID *int64          `json:"managerID"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID    int64           `json:"userID"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	ManagerID *int64          `json:"managerID,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
