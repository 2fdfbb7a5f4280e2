package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/db"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
	"github.com/yigit/phdportal/internal/pkg/logger"
	"github.com/yigit/phdportal/internal/pkg/matching"
)

// assignmentScholarStore is the slice of the scholar repository the
// assignment workflow needs.
type assignmentScholarStore interface {
	GetByID(ctx context.Context, id int64) (*models.Scholar, error)
	GetUnassignedCandidates(ctx context.Context) ([]*models.Scholar, error)
	AssignSupervisor(ctx context.Context, q repositories.Querier, id int64, supervisorName string, scholarType models.ScholarType) error
	ClearSupervisor(ctx context.Context, q repositories.Querier, id int64) error
}

// assignmentSupervisorStore is the slice of the supervisor repository the
// assignment workflow needs.
type assignmentSupervisorStore interface {
	GetByID(ctx context.Context, id int64) (*models.Supervisor, error)
	GetByName(ctx context.Context, name string) (*models.Supervisor, error)
	IncrementCurrent(ctx context.Context, q repositories.Querier, id int64, t models.ScholarType) error
	DecrementCurrent(ctx context.Context, q repositories.Querier, id int64, t models.ScholarType) error
}

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// assignmentDepartmentStore resolves the supervisor's department for
// candidate matching.
type assignmentDepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// AssignmentService defines the interface for supervisor assignment
// operations.
type AssignmentService interface {
	Assign(ctx context.Context, supervisorID int64, req dto.AssignScholarRequest) (*dto.AssignmentResponse, error)
	Unassign(ctx context.Context, req dto.UnassignScholarRequest) error
	Candidates(ctx context.Context, supervisorID int64, filter dto.CandidateFilter) ([]*models.Scholar, error)
}

// assignmentServiceImpl implements the AssignmentService interface
type assignmentServiceImpl struct {
	scholars    assignmentScholarStore
	supervisors assignmentSupervisorStore
	departments assignmentDepartmentStore
	tx          txRunner
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	scholars assignmentScholarStore,
	supervisors assignmentSupervisorStore,
	departments assignmentDepartmentStore,
	tx txRunner,
) AssignmentService {
	return &assignmentServiceImpl{
		scholars:    scholars,
		supervisors: supervisors,
		departments: departments,
		tx:          tx,
	}
}

// Assign places a scholar with a supervisor in one capacity bucket. Every
// precondition is checked before any write, and the two writes (the counter
// increment and the scholar record) commit or roll back together. The
// increment is conditional on remaining capacity at the database, so two
// concurrent assignments can never oversubscribe a slot.
func (s *assignmentServiceImpl) Assign(ctx context.Context, supervisorID int64, req dto.AssignScholarRequest) (*dto.AssignmentResponse, error) {
	if req.ScholarID <= 0 {
		return nil, apperrors.ErrNoScholarSelected
	}

	scholar, err := s.scholars.GetByID(ctx, req.ScholarID)
	if err != nil {
		return nil, err
	}
	if scholar.Absent {
		return nil, apperrors.ErrScholarAbsent
	}
	if scholar.IsAssigned() {
		return nil, apperrors.ErrAlreadyAssigned
	}

	scholarType, err := resolveAssignmentType(req.ScholarType)
	if err != nil {
		return nil, err
	}

	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.supervisors.IncrementCurrent(ctx, tx, supervisor.ID, scholarType); err != nil {
			return err
		}
		return s.scholars.AssignSupervisor(ctx, tx, scholar.ID, supervisor.Name, scholarType)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("scholarId", scholar.ID).
		Int64("supervisorId", supervisor.ID).
		Str("type", string(scholarType)).
		Msg("Scholar assigned to supervisor")

	// Re-read for the post-assignment vacancy; the in-memory copy predates
	// the increment.
	updated, err := s.supervisors.GetByID(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AssignmentResponse{
		ScholarID:        scholar.ID,
		ScholarName:      scholar.FullName,
		SupervisorID:     updated.ID,
		SupervisorName:   updated.Name,
		ScholarType:      string(scholarType),
		RemainingVacancy: updated.Vacancy(scholarType),
	}, nil
}

// resolveAssignmentType picks the capacity bucket for an assignment. The
// caller must say which bucket to consume; an assignment without a type is
// rejected before any write.
func resolveAssignmentType(requested string) (models.ScholarType, error) {
	if strings.TrimSpace(requested) == "" {
		return "", apperrors.ErrNoTypeSelected
	}

	t, ok := models.ParseScholarType(requested)
	if !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidScholarType, requested)
	}
	return t, nil
}

// Unassign releases a scholar from their supervisor and gives the slot back.
// The decrement floors at zero, so releasing a scholar whose counter already
// drifted low never produces a negative count.
func (s *assignmentServiceImpl) Unassign(ctx context.Context, req dto.UnassignScholarRequest) error {
	scholar, err := s.scholars.GetByID(ctx, req.ScholarID)
	if err != nil {
		return err
	}
	if !scholar.IsAssigned() {
		return apperrors.ErrNotAssigned
	}

	supervisor, err := s.supervisors.GetByName(ctx, *scholar.SupervisorName)
	if err != nil && !errors.Is(err, apperrors.ErrSupervisorNotFound) {
		return err
	}

	scholarType := scholar.CanonicalType()
	return s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if supervisor != nil {
			if err := s.supervisors.DecrementCurrent(ctx, tx, supervisor.ID, scholarType); err != nil {
				return err
			}
		}
		return s.scholars.ClearSupervisor(ctx, tx, scholar.ID)
	})
}

// Candidates lists unassigned, eligible, present scholars whose faculty and
// department match the supervisor's, best total score first.
func (s *assignmentServiceImpl) Candidates(ctx context.Context, supervisorID int64, filter dto.CandidateFilter) ([]*models.Scholar, error) {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	department, err := s.departments.GetByID(ctx, supervisor.DepartmentID)
	if err != nil {
		return nil, err
	}

	var typeFilter models.ScholarType
	if strings.TrimSpace(filter.ScholarType) != "" {
		t, ok := models.ParseScholarType(filter.ScholarType)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidScholarType, filter.ScholarType)
		}
		typeFilter = t
	}

	unassigned, err := s.scholars.GetUnassignedCandidates(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*models.Scholar, 0, len(unassigned))
	for _, scholar := range unassigned {
		if typeFilter != "" && scholar.CanonicalType() != typeFilter {
			continue
		}
		if department.Faculty != nil && !matching.FacultyMatches(scholar.FacultyName, department.Faculty.Name) {
			continue
		}
		// Department name first, then the free-text program string for
		// imported rows that never carried one.
		if matching.ResolveDepartment(scholar.DepartmentName, []string{department.Name}) == "" &&
			matching.ResolveDepartmentFromProgram(scholar.Program, []string{department.Name}) == "" {
			continue
		}
		candidates = append(candidates, scholar)
	}
	return candidates, nil
}
