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

// SupervisorRepository handles database operations for supervisors,
// including the per-type capacity counters.
type SupervisorRepository struct {
	db *pgxpool.Pool
}

// NewSupervisorRepository creates a new supervisor repository
func NewSupervisorRepository(db *pgxpool.Pool) *SupervisorRepository {
	return &SupervisorRepository{db: db}
}

const supervisorColumns = `
	id, name, email, faculty_id, department_id, specialization,
	max_full_time, max_part_time_internal, max_part_time_external, max_part_time_industry,
	current_full_time, current_part_time_internal, current_part_time_external, current_part_time_industry
`

func scanSupervisor(row pgx.Row) (*models.Supervisor, error) {
	var s models.Supervisor
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.FacultyID, &s.DepartmentID, &s.Specialization,
		&s.MaxFullTime, &s.MaxPartTimeInternal, &s.MaxPartTimeExternal, &s.MaxPartTimeIndustry,
		&s.CurrentFullTime, &s.CurrentPartTimeInternal, &s.CurrentPartTimeExternal, &s.CurrentPartTimeIndustry,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// counterColumns maps a scholar type to its (current, max) column pair.
func counterColumns(t models.ScholarType) (currentCol, maxCol string, err error) {
	switch t {
	case models.TypeFullTime:
		return "current_full_time", "max_full_time", nil
	case models.TypePartTimeInternal:
		return "current_part_time_internal", "max_part_time_internal", nil
	case models.TypePartTimeExternal:
		return "current_part_time_external", "max_part_time_external", nil
	case models.TypePartTimeIndustry:
		return "current_part_time_industry", "max_part_time_industry", nil
	}
	return "", "", fmt.Errorf("%w: %q", apperrors.ErrInvalidScholarType, t)
}

// Create creates a new supervisor
func (r *SupervisorRepository) Create(ctx context.Context, s *models.Supervisor) error {
	query := `
		INSERT INTO supervisors (
			name, email, faculty_id, department_id, specialization,
			max_full_time, max_part_time_internal, max_part_time_external, max_part_time_industry
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		s.Name, s.Email, s.FacultyID, s.DepartmentID, s.Specialization,
		s.MaxFullTime, s.MaxPartTimeInternal, s.MaxPartTimeExternal, s.MaxPartTimeIndustry,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating supervisor: %w", err)
	}

	return nil
}

// GetByID retrieves a supervisor by ID
func (r *SupervisorRepository) GetByID(ctx context.Context, id int64) (*models.Supervisor, error) {
	query := `SELECT ` + supervisorColumns + ` FROM supervisors WHERE id = $1`

	s, err := scanSupervisor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSupervisorNotFound
		}
		return nil, fmt.Errorf("error retrieving supervisor: %w", err)
	}

	return s, nil
}

// GetByName retrieves a supervisor by exact name
func (r *SupervisorRepository) GetByName(ctx context.Context, name string) (*models.Supervisor, error) {
	query := `SELECT ` + supervisorColumns + ` FROM supervisors WHERE name = $1`

	s, err := scanSupervisor(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSupervisorNotFound
		}
		return nil, fmt.Errorf("error retrieving supervisor: %w", err)
	}

	return s, nil
}

// GetAll retrieves all supervisors, optionally scoped to one department
// (pass 0 for all).
func (r *SupervisorRepository) GetAll(ctx context.Context, departmentID int64) ([]*models.Supervisor, error) {
	query := `SELECT ` + supervisorColumns + ` FROM supervisors WHERE ($1 = 0 OR department_id = $1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supervisors []*models.Supervisor
	for rows.Next() {
		s, err := scanSupervisor(rows)
		if err != nil {
			return nil, err
		}
		supervisors = append(supervisors, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return supervisors, nil
}

// Update updates supervisor details and capacity limits. The occupied-slot
// counters are only touched by the counter operations below.
func (r *SupervisorRepository) Update(ctx context.Context, s *models.Supervisor) error {
	query := `
		UPDATE supervisors
		SET name = $1, email = $2, department_id = $3, specialization = $4,
			max_full_time = $5, max_part_time_internal = $6,
			max_part_time_external = $7, max_part_time_industry = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		s.Name, s.Email, s.DepartmentID, s.Specialization,
		s.MaxFullTime, s.MaxPartTimeInternal, s.MaxPartTimeExternal, s.MaxPartTimeIndustry,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating supervisor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}

	return nil
}

// Delete deletes a supervisor by ID
func (r *SupervisorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM supervisors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting supervisor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}

	return nil
}

// IncrementCurrent occupies one slot of the given type. The vacancy check
// and the increment run as a single conditional update, so two sessions
// racing for the last slot cannot both succeed. Returns ErrNoVacancy when
// the bucket is already full.
func (r *SupervisorRepository) IncrementCurrent(ctx context.Context, q Querier, id int64, t models.ScholarType) error {
	currentCol, maxCol, err := counterColumns(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE supervisors SET %s = %s + 1 WHERE id = $1 AND %s < %s`,
		currentCol, currentCol, currentCol, maxCol,
	)

	cmdTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error incrementing %s: %w", currentCol, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoVacancy
	}

	return nil
}

// DecrementCurrent releases one slot of the given type, flooring at zero so
// drifted counters never go negative.
func (r *SupervisorRepository) DecrementCurrent(ctx context.Context, q Querier, id int64, t models.ScholarType) error {
	currentCol, _, err := counterColumns(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE supervisors SET %s = GREATEST(%s - 1, 0) WHERE id = $1`,
		currentCol, currentCol,
	)

	cmdTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error decrementing %s: %w", currentCol, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}

	return nil
}

// SetCurrentCounters overwrites all four occupied-slot counters. Used by the
// reconciliation pass after recounting admitted scholars from source.
func (r *SupervisorRepository) SetCurrentCounters(ctx context.Context, id int64, counts map[models.ScholarType]int) error {
	query := `
		UPDATE supervisors
		SET current_full_time = $1, current_part_time_internal = $2,
			current_part_time_external = $3, current_part_time_industry = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		counts[models.TypeFullTime],
		counts[models.TypePartTimeInternal],
		counts[models.TypePartTimeExternal],
		counts[models.TypePartTimeIndustry],
		id,
	)
	if err != nil {
		return fmt.Errorf("error setting counters: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}

	return nil
}
