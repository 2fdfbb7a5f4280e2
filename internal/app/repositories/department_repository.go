package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (faculty_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, department.FacultyID, department.Name).Scan(&department.ID)
	if err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT d.id, d.faculty_id, d.name, f.id, f.name, f.code
		FROM departments d
		JOIN faculties f ON d.faculty_id = f.id
		WHERE d.id = $1
	`

	var department models.Department
	var faculty models.Faculty
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.FacultyID,
		&department.Name,
		&faculty.ID,
		&faculty.Name,
		&faculty.Code,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	department.Faculty = &faculty
	return &department, nil
}

// GetAll retrieves all departments with their faculty attached
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT d.id, d.faculty_id, d.name, f.id, f.name, f.code
		FROM departments d
		JOIN faculties f ON d.faculty_id = f.id
		ORDER BY d.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDepartments(rows)
}

// GetByFacultyID retrieves all departments for a given faculty
func (r *DepartmentRepository) GetByFacultyID(ctx context.Context, facultyID int64) ([]*models.Department, error) {
	query := `
		SELECT d.id, d.faculty_id, d.name, f.id, f.name, f.code
		FROM departments d
		JOIN faculties f ON d.faculty_id = f.id
		WHERE d.faculty_id = $1
		ORDER BY d.id
	`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDepartments(rows)
}

func scanDepartments(rows pgx.Rows) ([]*models.Department, error) {
	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		var faculty models.Faculty
		if err := rows.Scan(
			&department.ID,
			&department.FacultyID,
			&department.Name,
			&faculty.ID,
			&faculty.Name,
			&faculty.Code,
		); err != nil {
			return nil, err
		}
		department.Faculty = &faculty
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// ExistsByName checks if a department with this name exists, excluding one id
// (pass 0 to check all).
func (r *DepartmentRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1) AND id != $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}

	return exists, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	exists, err := r.ExistsByName(ctx, department.Name, department.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	query := `
		UPDATE departments
		SET faculty_id = $1, name = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, department.FacultyID, department.Name, department.ID)
	if err != nil {
		return fmt.Errorf("error updating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// Delete deletes a department by ID. Departments that still own supervisors
// cannot be deleted.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	var hasSupervisors bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM supervisors WHERE department_id = $1)`,
		id).Scan(&hasSupervisors)
	if err != nil {
		return fmt.Errorf("error checking related supervisors: %w", err)
	}

	if hasSupervisors {
		return apperrors.ErrDepartmentHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}
