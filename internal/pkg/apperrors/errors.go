package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Department errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name already exists")
	ErrDepartmentHasRelations  = errors.New("department has associated data and cannot be deleted")
)

// Faculty errors
var (
	ErrFacultyNotFound = errors.New("faculty not found")
)

// Scholar errors
var (
	ErrScholarNotFound      = errors.New("scholar not found")
	ErrScholarAbsent        = errors.New("scholar is marked absent")
	ErrInvalidStatusChange  = errors.New("status transition not allowed")
	ErrScholarAlreadyExists = errors.New("scholar with this email already exists")
)

// Supervisor and assignment errors
var (
	ErrSupervisorNotFound = errors.New("supervisor not found")
	ErrNoVacancy          = errors.New("supervisor has no vacancy for this scholar type")
	ErrAlreadyAssigned    = errors.New("scholar is already assigned to a supervisor")
	ErrNotAssigned        = errors.New("scholar has no supervisor assigned")
	ErrInvalidScholarType = errors.New("invalid scholar type")
	ErrNoScholarSelected  = errors.New("no scholar selected")
	ErrNoTypeSelected     = errors.New("no scholar type selected")
)

// NewResourceNotFoundError creates a resource-not-found error with a message.
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// CustomError carries an underlying sentinel plus request-specific context.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
