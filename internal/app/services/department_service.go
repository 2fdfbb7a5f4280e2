package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
)

// DepartmentService defines the interface for department-related operations
type DepartmentService interface {
	CreateDepartment(ctx context.Context, department *models.Department) error
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	GetAllDepartments(ctx context.Context) ([]*models.Department, error)
	GetDepartmentsByFaculty(ctx context.Context, facultyID int64) ([]*models.Department, error)
	UpdateDepartment(ctx context.Context, department *models.Department) error
	DeleteDepartment(ctx context.Context, id int64) error
}

// departmentServiceImpl implements the DepartmentService interface
type departmentServiceImpl struct {
	departmentRepo *repositories.DepartmentRepository
	facultyRepo    *repositories.FacultyRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository, facultyRepo *repositories.FacultyRepository) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		facultyRepo:    facultyRepo,
	}
}

func (s *departmentServiceImpl) validateDepartment(department *models.Department) error {
	if department == nil {
		return fmt.Errorf("%w: department is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(department.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if department.FacultyID <= 0 {
		return fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateDepartment creates a new department under an existing faculty
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	// Parent faculty must exist
	if _, err := s.facultyRepo.GetByID(ctx, department.FacultyID); err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return apperrors.ErrFacultyNotFound
		}
		return fmt.Errorf("error checking faculty: %w", err)
	}

	exists, err := s.departmentRepo.ExistsByName(ctx, department.Name, 0)
	if err != nil {
		return fmt.Errorf("error checking department name: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID
func (s *departmentServiceImpl) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}

	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return department, nil
}

// GetAllDepartments retrieves all departments
func (s *departmentServiceImpl) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// GetDepartmentsByFaculty retrieves the departments of one faculty
func (s *departmentServiceImpl) GetDepartmentsByFaculty(ctx context.Context, facultyID int64) ([]*models.Department, error) {
	if facultyID <= 0 {
		return nil, fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}

	departments, err := s.departmentRepo.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// UpdateDepartment updates an existing department
func (s *departmentServiceImpl) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}
	if department.ID <= 0 {
		return fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}

	err := s.departmentRepo.Update(ctx, department)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) || errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			return err
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	return nil
}

// DeleteDepartment deletes a department by ID
func (s *departmentServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}

	err := s.departmentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) || errors.Is(err, apperrors.ErrDepartmentHasRelations) {
			return err
		}
		return fmt.Errorf("error deleting department: %w", err)
	}
	return nil
}
