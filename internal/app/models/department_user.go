package models

import "time"

// UserRole defines the access level of a portal account.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleDepartment  UserRole = "DEPARTMENT"
	RoleCoordinator UserRole = "COORDINATOR"
)

// DepartmentUser is a portal login account. Admin and coordinator accounts
// carry no department; department accounts are scoped to exactly one.
type DepartmentUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         UserRole  `json:"role"`
	DepartmentID *int64    `json:"departmentId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	Department *Department `json:"department,omitempty"`
}
