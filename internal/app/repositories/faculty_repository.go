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

// FacultyRepository handles database operations for faculties
type FacultyRepository struct {
	db *pgxpool.Pool
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// Create inserts a faculty, returning its id. Faculties are seeded once and
// rarely touched afterwards.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) (int64, error) {
	query := `
		INSERT INTO faculties (name, code)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, faculty.Name, faculty.Code).Scan(&faculty.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	return faculty.ID, nil
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	query := `SELECT id, name, code FROM faculties WHERE id = $1`

	var faculty models.Faculty
	err := r.db.QueryRow(ctx, query, id).Scan(&faculty.ID, &faculty.Name, &faculty.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	return &faculty, nil
}

// GetByCode retrieves a faculty by its short code
func (r *FacultyRepository) GetByCode(ctx context.Context, code string) (*models.Faculty, error) {
	query := `SELECT id, name, code FROM faculties WHERE code = $1`

	var faculty models.Faculty
	err := r.db.QueryRow(ctx, query, code).Scan(&faculty.ID, &faculty.Name, &faculty.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	return &faculty, nil
}

// GetAll retrieves all faculties
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	query := `SELECT id, name, code FROM faculties ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faculties []*models.Faculty
	for rows.Next() {
		var faculty models.Faculty
		if err := rows.Scan(&faculty.ID, &faculty.Name, &faculty.Code); err != nil {
			return nil, err
		}
		faculties = append(faculties, &faculty)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return faculties, nil
}
