package domain

// UserRole classifies a user within the one-level reporting hierarchy.
type UserRole string

const (
	RoleEmployee UserRole = "EMPLOYEE"
	RoleManager  UserRole = "MANAGER"
	RoleAdmin    UserRole = "ADMIN"
)

// IsValid reports whether the role is one of the defined values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the reporting hierarchy.
// Employees must reference a manager; Managers and Admins must not.
type User struct {
	UserID       int64    `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"` // unique, case-insensitive
	PasswordHash string   `json:"-"`
	PasswordSalt string   `json:"-"`
	Role         UserRole `json:"role"`
	ManagerID    *int64   `json:"managerID,omitempty"`
	AuditFields
}

// IsManager reports whether the user holds the Manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
