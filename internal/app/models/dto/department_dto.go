package dto

// DepartmentResponse represents basic department information
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FacultyID   int64  `json:"facultyId"`
	FacultyName string `json:"facultyName,omitempty"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	FacultyID int64  `json:"facultyId" binding:"required,gt=0"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	FacultyID int64  `json:"facultyId" binding:"required,gt=0"`
}
