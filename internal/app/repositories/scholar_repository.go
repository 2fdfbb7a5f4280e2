package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
	"github.com/yigit/phdportal/internal/pkg/helpers"
)

// ScholarRepository handles database operations for scholar examination
// records.
type ScholarRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScholarRepository creates a new ScholarRepository
func NewScholarRepository(db *pgxpool.Pool) *ScholarRepository {
	return &ScholarRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var scholarColumns = []string{
	"id", "full_name", "email", "mobile", "gender", "category", "nationality", "address", "certificates",
	"program", "program_type", "type", "faculty_name", "department_name",
	"ug_degree", "ug_branch", "ug_university", "ug_college", "ug_mode",
	"ug_year_of_passing", "ug_percentage", "ug_cgpa", "ug_class", "ug_duration",
	"pg_degree", "pg_branch", "pg_university", "pg_college", "pg_mode",
	"pg_year_of_passing", "pg_percentage", "pg_cgpa", "pg_class", "pg_duration",
	"other_degree", "other_degree_details",
	"exam1_name", "exam1_score", "exam1_year",
	"exam2_name", "exam2_score", "exam2_year",
	"exam3_name", "exam3_score", "exam3_year",
	"written_marks", "interview_marks", "total_score",
	"status", "eligibility", "absent",
	"supervisor_name", "supervisor_status", "dept_result", "result_dir",
	"created_at", "updated_at",
}

func scanScholar(row pgx.Row) (*models.Scholar, error) {
	var s models.Scholar
	var supervisorName, supervisorStatus sql.NullString
	err := row.Scan(
		&s.ID, &s.FullName, &s.Email, &s.Mobile, &s.Gender, &s.Category, &s.Nationality, &s.Address, &s.Certificates,
		&s.Program, &s.ProgramType, &s.Type, &s.FacultyName, &s.DepartmentName,
		&s.UGDegree, &s.UGBranch, &s.UGUniversity, &s.UGCollege, &s.UGMode,
		&s.UGYearOfPassing, &s.UGPercentage, &s.UGCGPA, &s.UGClass, &s.UGDuration,
		&s.PGDegree, &s.PGBranch, &s.PGUniversity, &s.PGCollege, &s.PGMode,
		&s.PGYearOfPassing, &s.PGPercentage, &s.PGCGPA, &s.PGClass, &s.PGDuration,
		&s.OtherDegree, &s.OtherDegreeDetails,
		&s.Exam1Name, &s.Exam1Score, &s.Exam1Year,
		&s.Exam2Name, &s.Exam2Score, &s.Exam2Year,
		&s.Exam3Name, &s.Exam3Score, &s.Exam3Year,
		&s.WrittenMarks, &s.InterviewMarks, &s.TotalScore,
		&s.Status, &s.Eligibility, &s.Absent,
		&supervisorName, &supervisorStatus, &s.DeptResult, &s.ResultDir,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supervisorName.Valid {
		s.SupervisorName = &supervisorName.String
	}
	if supervisorStatus.Valid {
		s.SupervisorStatus = &supervisorStatus.String
	}
	return &s, nil
}

func collectScholars(rows pgx.Rows) ([]*models.Scholar, error) {
	defer rows.Close()
	var scholars []*models.Scholar
	for rows.Next() {
		s, err := scanScholar(rows)
		if err != nil {
			return nil, err
		}
		scholars = append(scholars, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scholars, nil
}

// Create inserts a scholar record, returning its id.
func (r *ScholarRepository) Create(ctx context.Context, s *models.Scholar) error {
	query := `
		INSERT INTO scholars (
			full_name, email, mobile, gender, category, nationality, address, certificates,
			program, program_type, type, faculty_name, department_name,
			ug_degree, ug_branch, ug_university, ug_college, ug_mode,
			ug_year_of_passing, ug_percentage, ug_cgpa, ug_class, ug_duration,
			pg_degree, pg_branch, pg_university, pg_college, pg_mode,
			pg_year_of_passing, pg_percentage, pg_cgpa, pg_class, pg_duration,
			other_degree, other_degree_details,
			exam1_name, exam1_score, exam1_year,
			exam2_name, exam2_score, exam2_year,
			exam3_name, exam3_score, exam3_year,
			written_marks, interview_marks, total_score,
			status, eligibility, absent, dept_result, result_dir
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23,
			$24, $25, $26, $27, $28, $29, $30, $31, $32, $33,
			$34, $35,
			$36, $37, $38, $39, $40, $41, $42, $43, $44,
			$45, $46, $47,
			$48, $49, $50, $51, $52
		)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.FullName, s.Email, s.Mobile, s.Gender, s.Category, s.Nationality, s.Address, s.Certificates,
		s.Program, s.ProgramType, s.Type, s.FacultyName, s.DepartmentName,
		s.UGDegree, s.UGBranch, s.UGUniversity, s.UGCollege, s.UGMode,
		s.UGYearOfPassing, s.UGPercentage, s.UGCGPA, s.UGClass, s.UGDuration,
		s.PGDegree, s.PGBranch, s.PGUniversity, s.PGCollege, s.PGMode,
		s.PGYearOfPassing, s.PGPercentage, s.PGCGPA, s.PGClass, s.PGDuration,
		s.OtherDegree, s.OtherDegreeDetails,
		s.Exam1Name, s.Exam1Score, s.Exam1Year,
		s.Exam2Name, s.Exam2Score, s.Exam2Year,
		s.Exam3Name, s.Exam3Score, s.Exam3Year,
		s.WrittenMarks, s.InterviewMarks, s.TotalScore,
		s.Status, s.Eligibility, s.Absent, s.DeptResult, s.ResultDir,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating scholar: %w", err)
	}

	return nil
}

// GetByID retrieves a scholar by ID
func (r *ScholarRepository) GetByID(ctx context.Context, id int64) (*models.Scholar, error) {
	query := `SELECT ` + strings.Join(scholarColumns, ", ") + ` FROM scholars WHERE id = $1`

	s, err := scanScholar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScholarNotFound
		}
		return nil, fmt.Errorf("error retrieving scholar: %w", err)
	}

	return s, nil
}

// filterConditions translates a ScholarFilter into SQL conditions. Faculty
// and department filtering on exact stored names only; free-text variants
// are resolved by the matching layer before they reach the query.
func filterConditions(filter dto.ScholarFilter) squirrel.And {
	cond := squirrel.And{}
	if filter.Faculty != "" {
		cond = append(cond, squirrel.Eq{"faculty_name": filter.Faculty})
	}
	if filter.Department != "" {
		cond = append(cond, squirrel.Eq{"department_name": filter.Department})
	}
	if filter.Status != "" {
		cond = append(cond, squirrel.ILike{"status": filter.Status + "%"})
	}
	if filter.ScholarType != "" {
		cond = append(cond, squirrel.Eq{"type": filter.ScholarType})
	}
	if filter.Eligibility != "" {
		cond = append(cond, squirrel.Eq{"eligibility": filter.Eligibility})
	}
	if filter.Search != "" {
		term := "%" + strings.TrimSpace(filter.Search) + "%"
		cond = append(cond, squirrel.Or{
			squirrel.ILike{"full_name": term},
			squirrel.ILike{"email": term},
			squirrel.ILike{"mobile": term},
		})
	}
	if filter.Unassigned {
		cond = append(cond, squirrel.Eq{"supervisor_name": nil})
	}
	return cond
}

// GetAll retrieves scholars matching the filter, paginated, total-score
// descending.
func (r *ScholarRepository) GetAll(ctx context.Context, filter dto.ScholarFilter, page, size int) ([]*models.Scholar, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	cond := filterConditions(filter)

	countQuery := r.sb.Select("COUNT(*)").From("scholars")
	if len(cond) > 0 {
		countQuery = countQuery.Where(cond)
	}
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting scholars: %w", err)
	}

	listQuery := r.sb.Select(scholarColumns...).From("scholars").
		OrderBy("total_score DESC", "id ASC").
		Limit(uint64(limit)).
		Offset(offset)
	if len(cond) > 0 {
		listQuery = listQuery.Where(cond)
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	scholars, err := collectScholars(rows)
	if err != nil {
		return nil, 0, err
	}

	return scholars, total, nil
}

// GetAllUnpaged retrieves every scholar matching the filter. Used by the
// export, duplicate detection and eligibility recompute paths, which operate
// on the whole matching set.
func (r *ScholarRepository) GetAllUnpaged(ctx context.Context, filter dto.ScholarFilter) ([]*models.Scholar, error) {
	cond := filterConditions(filter)

	listQuery := r.sb.Select(scholarColumns...).From("scholars").
		OrderBy("total_score DESC", "id ASC")
	if len(cond) > 0 {
		listQuery = listQuery.Where(cond)
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, err
	}

	return collectScholars(rows)
}

// GetUnassignedCandidates retrieves scholars eligible for supervisor
// assignment: present, eligible, not yet assigned, ordered by total score
// descending. Faculty/department narrowing happens in the service through
// the matching layer.
func (r *ScholarRepository) GetUnassignedCandidates(ctx context.Context) ([]*models.Scholar, error) {
	query := `
		SELECT ` + strings.Join(scholarColumns, ", ") + `
		FROM scholars
		WHERE supervisor_name IS NULL
		  AND absent = FALSE
		  AND eligibility = 'Eligible'
		ORDER BY total_score DESC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return collectScholars(rows)
}

// GetAdmitted retrieves every scholar currently assigned to a supervisor.
// Source of truth for counter reconciliation.
func (r *ScholarRepository) GetAdmitted(ctx context.Context) ([]*models.Scholar, error) {
	query := `
		SELECT ` + strings.Join(scholarColumns, ", ") + `
		FROM scholars
		WHERE supervisor_name IS NOT NULL AND supervisor_status = $1
	`

	rows, err := r.db.Query(ctx, query, models.SupervisorStatusAdmitted)
	if err != nil {
		return nil, err
	}

	return collectScholars(rows)
}

// ExistsByEmail checks if a scholar with this email exists.
func (r *ScholarRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM scholars WHERE LOWER(email) = LOWER($1))`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking scholar existence: %w", err)
	}
	return exists, nil
}

// Update updates the editable fields of a scholar record.
func (r *ScholarRepository) Update(ctx context.Context, s *models.Scholar) error {
	query := `
		UPDATE scholars SET
			full_name = $1, email = $2, mobile = $3, gender = $4, category = $5,
			nationality = $6, address = $7, certificates = $8,
			program = $9, program_type = $10, type = $11,
			faculty_name = $12, department_name = $13,
			ug_degree = $14, ug_branch = $15, ug_university = $16, ug_college = $17, ug_mode = $18,
			ug_year_of_passing = $19, ug_percentage = $20, ug_cgpa = $21, ug_class = $22, ug_duration = $23,
			pg_degree = $24, pg_branch = $25, pg_university = $26, pg_college = $27, pg_mode = $28,
			pg_year_of_passing = $29, pg_percentage = $30, pg_cgpa = $31, pg_class = $32, pg_duration = $33,
			other_degree = $34, other_degree_details = $35,
			exam1_name = $36, exam1_score = $37, exam1_year = $38,
			exam2_name = $39, exam2_score = $40, exam2_year = $41,
			exam3_name = $42, exam3_score = $43, exam3_year = $44,
			updated_at = NOW()
		WHERE id = $45
	`

	cmdTag, err := r.db.Exec(ctx, query,
		s.FullName, s.Email, s.Mobile, s.Gender, s.Category,
		s.Nationality, s.Address, s.Certificates,
		s.Program, s.ProgramType, s.Type,
		s.FacultyName, s.DepartmentName,
		s.UGDegree, s.UGBranch, s.UGUniversity, s.UGCollege, s.UGMode,
		s.UGYearOfPassing, s.UGPercentage, s.UGCGPA, s.UGClass, s.UGDuration,
		s.PGDegree, s.PGBranch, s.PGUniversity, s.PGCollege, s.PGMode,
		s.PGYearOfPassing, s.PGPercentage, s.PGCGPA, s.PGClass, s.PGDuration,
		s.OtherDegree, s.OtherDegreeDetails,
		s.Exam1Name, s.Exam1Score, s.Exam1Year,
		s.Exam2Name, s.Exam2Score, s.Exam2Year,
		s.Exam3Name, s.Exam3Score, s.Exam3Year,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating scholar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// UpdateMarks records examination marks and recomputes the total.
func (r *ScholarRepository) UpdateMarks(ctx context.Context, id int64, written, interview float64, absent bool) error {
	query := `
		UPDATE scholars
		SET written_marks = $1, interview_marks = $2, total_score = $1 + $2,
			absent = $3, updated_at = NOW()
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, written, interview, absent, id)
	if err != nil {
		return fmt.Errorf("error updating marks: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// UpdateStatus sets the lifecycle status tag.
func (r *ScholarRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE scholars SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// SetEligibility stores a computed eligibility flag.
func (r *ScholarRepository) SetEligibility(ctx context.Context, id int64, eligibility string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE scholars SET eligibility = $1, updated_at = NOW() WHERE id = $2`, eligibility, id)
	if err != nil {
		return fmt.Errorf("error setting eligibility: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// SetDeptResult records the department publish stage result.
func (r *ScholarRepository) SetDeptResult(ctx context.Context, id int64, result string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE scholars SET dept_result = $1, updated_at = NOW() WHERE id = $2`, result, id)
	if err != nil {
		return fmt.Errorf("error setting department result: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// SetResultDir records the director publish stage result.
func (r *ScholarRepository) SetResultDir(ctx context.Context, id int64, result string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE scholars SET result_dir = $1, updated_at = NOW() WHERE id = $2`, result, id)
	if err != nil {
		return fmt.Errorf("error setting director result: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// AssignSupervisor writes the supervisor fields of a scholar record and pins
// the capacity bucket the assignment consumed onto the type column, so the
// later release decrements the same bucket. Guarded against double assignment
// at the SQL level; runs inside the assignment transaction.
func (r *ScholarRepository) AssignSupervisor(ctx context.Context, q Querier, id int64, supervisorName string, scholarType models.ScholarType) error {
	query := `
		UPDATE scholars
		SET supervisor_name = $1, supervisor_status = $2, type = $3, updated_at = NOW()
		WHERE id = $4 AND supervisor_name IS NULL
	`

	cmdTag, err := q.Exec(ctx, query, supervisorName, models.SupervisorStatusAdmitted, string(scholarType), id)
	if err != nil {
		return fmt.Errorf("error assigning supervisor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyAssigned
	}

	return nil
}

// ClearSupervisor clears both supervisor fields; runs inside the unassign
// transaction.
func (r *ScholarRepository) ClearSupervisor(ctx context.Context, q Querier, id int64) error {
	query := `
		UPDATE scholars
		SET supervisor_name = NULL, supervisor_status = NULL, updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error clearing supervisor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// Delete deletes a scholar by ID
func (r *ScholarRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM scholars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting scholar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarNotFound
	}

	return nil
}

// DeleteMany deletes scholars by id list, returning how many rows went away.
func (r *ScholarRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM scholars WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("error deleting scholars: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
