package dto

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the account it belongs to.
type LoginResponse struct {
	Token        string `json:"token"`
	ExpiresIn    int    `json:"expiresIn"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// CreateUserRequest creates a portal account.
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName" binding:"required"`
	Role         string `json:"role" binding:"required,oneof=ADMIN DEPARTMENT COORDINATOR"`
	DepartmentID *int64 `json:"departmentId"`
}
