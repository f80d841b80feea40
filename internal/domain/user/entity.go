package user

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"      // Full access
	RoleHRManager Role = "hr_manager" // Manages employees, leave, masters
	RoleEmployee  Role = "employee"   // Self-service only
)

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has full access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.Role == RoleAdmin || u.Role == RoleHRManager
}
