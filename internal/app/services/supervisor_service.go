package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
	"github.com/yigit/phdportal/internal/pkg/logger"
)

// SupervisorService defines the interface for supervisor-related operations
type SupervisorService interface {
	CreateSupervisor(ctx context.Context, req dto.CreateSupervisorRequest) (*models.Supervisor, error)
	GetSupervisorByID(ctx context.Context, id int64) (*models.Supervisor, error)
	GetSupervisors(ctx context.Context, departmentID int64) ([]*models.Supervisor, error)
	UpdateSupervisor(ctx context.Context, id int64, req dto.UpdateSupervisorRequest) (*models.Supervisor, error)
	DeleteSupervisor(ctx context.Context, id int64) error

	GetVacancies(ctx context.Context, id int64) (*dto.SupervisorVacancies, error)
	ReconcileCounters(ctx context.Context) (*dto.ReconcileResult, error)
}

// supervisorServiceImpl implements the SupervisorService interface
type supervisorServiceImpl struct {
	supervisorRepo *repositories.SupervisorRepository
	scholarRepo    *repositories.ScholarRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewSupervisorService creates a new supervisor service instance
func NewSupervisorService(
	supervisorRepo *repositories.SupervisorRepository,
	scholarRepo *repositories.ScholarRepository,
	departmentRepo *repositories.DepartmentRepository,
) SupervisorService {
	return &supervisorServiceImpl{
		supervisorRepo: supervisorRepo,
		scholarRepo:    scholarRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateSupervisor creates a supervisor under an existing department.
func (s *supervisorServiceImpl) CreateSupervisor(ctx context.Context, req dto.CreateSupervisorRequest) (*models.Supervisor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error checking department: %w", err)
	}

	supervisor := &models.Supervisor{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		FacultyID:      department.FacultyID,
		DepartmentID:   department.ID,
		Specialization: req.Specialization,

		MaxFullTime:         req.MaxFullTime,
		MaxPartTimeInternal: req.MaxPartTimeInternal,
		MaxPartTimeExternal: req.MaxPartTimeExternal,
		MaxPartTimeIndustry: req.MaxPartTimeIndustry,
	}

	if err := s.supervisorRepo.Create(ctx, supervisor); err != nil {
		return nil, fmt.Errorf("error creating supervisor: %w", err)
	}
	return supervisor, nil
}

// GetSupervisorByID retrieves a supervisor by ID
func (s *supervisorServiceImpl) GetSupervisorByID(ctx context.Context, id int64) (*models.Supervisor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid supervisor ID", apperrors.ErrValidationFailed)
	}

	supervisor, err := s.supervisorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSupervisorNotFound) {
			return nil, apperrors.ErrSupervisorNotFound
		}
		return nil, fmt.Errorf("error retrieving supervisor: %w", err)
	}
	return supervisor, nil
}

// GetSupervisors lists supervisors, optionally narrowed to one department.
func (s *supervisorServiceImpl) GetSupervisors(ctx context.Context, departmentID int64) ([]*models.Supervisor, error) {
	supervisors, err := s.supervisorRepo.GetAll(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving supervisors: %w", err)
	}
	return supervisors, nil
}

// UpdateSupervisor updates a supervisor's profile and capacity limits. The
// occupied-slot counters are owned by the assignment workflow and never
// written here.
func (s *supervisorServiceImpl) UpdateSupervisor(ctx context.Context, id int64, req dto.UpdateSupervisorRequest) (*models.Supervisor, error) {
	supervisor, err := s.GetSupervisorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != supervisor.DepartmentID {
		department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrDepartmentNotFound) {
				return nil, apperrors.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("error checking department: %w", err)
		}
		supervisor.DepartmentID = department.ID
		supervisor.FacultyID = department.FacultyID
	}

	supervisor.Name = strings.TrimSpace(req.Name)
	supervisor.Email = req.Email
	supervisor.Specialization = req.Specialization
	supervisor.MaxFullTime = req.MaxFullTime
	supervisor.MaxPartTimeInternal = req.MaxPartTimeInternal
	supervisor.MaxPartTimeExternal = req.MaxPartTimeExternal
	supervisor.MaxPartTimeIndustry = req.MaxPartTimeIndustry

	if err := s.supervisorRepo.Update(ctx, supervisor); err != nil {
		return nil, fmt.Errorf("error updating supervisor: %w", err)
	}
	return supervisor, nil
}

// DeleteSupervisor deletes a supervisor. Supervisors with admitted scholars
// cannot be removed until those scholars are released.
func (s *supervisorServiceImpl) DeleteSupervisor(ctx context.Context, id int64) error {
	supervisor, err := s.GetSupervisorByID(ctx, id)
	if err != nil {
		return err
	}

	for _, t := range models.AllScholarTypes {
		if supervisor.Current(t) > 0 {
			return fmt.Errorf("%w: supervisor has admitted scholars", apperrors.ErrConflict)
		}
	}

	if err := s.supervisorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting supervisor: %w", err)
	}
	return nil
}

// GetVacancies returns the derived per-type vacancy view of a supervisor.
func (s *supervisorServiceImpl) GetVacancies(ctx context.Context, id int64) (*dto.SupervisorVacancies, error) {
	supervisor, err := s.GetSupervisorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.SupervisorVacancies{
		FullTime:         supervisor.Vacancy(models.TypeFullTime),
		PartTimeInternal: supervisor.Vacancy(models.TypePartTimeInternal),
		PartTimeExternal: supervisor.Vacancy(models.TypePartTimeExternal),
		PartTimeIndustry: supervisor.Vacancy(models.TypePartTimeIndustry),
	}, nil
}

// ReconcileCounters recounts admitted scholars per supervisor and type and
// rewrites any stored counter that disagrees. The scholar records are the
// source of truth; the counters are a cache of them.
func (s *supervisorServiceImpl) ReconcileCounters(ctx context.Context) (*dto.ReconcileResult, error) {
	supervisors, err := s.supervisorRepo.GetAll(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("error retrieving supervisors: %w", err)
	}

	admitted, err := s.scholarRepo.GetAdmitted(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving admitted scholars: %w", err)
	}

	// actual[supervisor name][type] from the scholar records, with each
	// scholar's type canonicalized the same way the assignment path does it
	actual := make(map[string]map[models.ScholarType]int)
	for _, scholar := range admitted {
		if scholar.SupervisorName == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(*scholar.SupervisorName))
		if actual[name] == nil {
			actual[name] = make(map[models.ScholarType]int)
		}
		actual[name][scholar.CanonicalType()]++
	}

	result := &dto.ReconcileResult{Checked: len(supervisors)}
	for _, supervisor := range supervisors {
		counts := actual[strings.ToLower(strings.TrimSpace(supervisor.Name))]
		drifted := false
		for _, t := range models.AllScholarTypes {
			if supervisor.Current(t) == counts[t] {
				continue
			}
			drifted = true
			result.Drift = append(result.Drift, dto.ReconcileDrift{
				SupervisorID:   supervisor.ID,
				SupervisorName: supervisor.Name,
				ScholarType:    string(t),
				Stored:         supervisor.Current(t),
				Actual:         counts[t],
			})
		}
		if !drifted {
			continue
		}

		if err := s.supervisorRepo.SetCurrentCounters(ctx, supervisor.ID, counts); err != nil {
			return nil, fmt.Errorf("error correcting counters for supervisor %d: %w", supervisor.ID, err)
		}
		result.Corrected++
		logger.Info().
			Int64("supervisorId", supervisor.ID).
			Str("supervisor", supervisor.Name).
			Msg("Supervisor counters reconciled")
	}

	return result, nil
}
