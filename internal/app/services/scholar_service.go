package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
	"github.com/yigit/phdportal/internal/pkg/eligibility"
	"github.com/yigit/phdportal/internal/pkg/logger"
	"github.com/yigit/phdportal/internal/pkg/matching"
	"github.com/yigit/phdportal/internal/pkg/spreadsheet"
)

// ScholarService defines the interface for scholar-related operations
type ScholarService interface {
	CreateScholar(ctx context.Context, scholar *models.Scholar) error
	GetScholarByID(ctx context.Context, id int64) (*models.Scholar, error)
	GetScholars(ctx context.Context, filter dto.ScholarFilter, page, size int) ([]*models.Scholar, int64, error)
	UpdateScholar(ctx context.Context, scholar *models.Scholar) error
	DeleteScholar(ctx context.Context, id int64) error
	DeleteScholars(ctx context.Context, ids []int64) (int64, error)

	UpdateMarks(ctx context.Context, id int64, req dto.UpdateMarksRequest) (*models.Scholar, error)
	ChangeStatus(ctx context.Context, id int64, status string) (*models.Scholar, error)
	ForwardScholars(ctx context.Context, ids []int64) (*dto.BatchResult, error)
	PublishDepartmentResult(ctx context.Context, id int64, result string) error
	PublishDirectorResult(ctx context.Context, id int64, result string) error

	ImportScholars(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
	ExportScholars(ctx context.Context, filter dto.ScholarFilter, w io.Writer) error
	DuplicateReport(ctx context.Context) ([]eligibility.DuplicateGroup, error)
	RecomputeEligibility(ctx context.Context) (*dto.EligibilityRecomputeResult, error)
}

// scholarServiceImpl implements the ScholarService interface
type scholarServiceImpl struct {
	scholarRepo *repositories.ScholarRepository
}

// NewScholarService creates a new scholar service instance
func NewScholarService(scholarRepo *repositories.ScholarRepository) ScholarService {
	return &scholarServiceImpl{
		scholarRepo: scholarRepo,
	}
}

// normalizeScholar canonicalizes the derived fields of a record before it is
// stored: scholar type from the type/programType/program chain, faculty name
// to its canonical form when the free text resolves, and the status label.
func normalizeScholar(s *models.Scholar) {
	s.Type = string(models.CanonicalType(s.Type, s.ProgramType, s.Program))

	if resolved := matching.ResolveFaculty(s.FacultyName); resolved != "" {
		s.FacultyName = resolved
	}
	if strings.TrimSpace(s.DepartmentName) == "" {
		s.DepartmentName = matching.ExtractDepartmentFromProgram(s.Program)
	}

	if strings.TrimSpace(s.Status) == "" {
		s.Status = string(models.StatusPending)
	} else {
		s.Status = string(models.CanonicalStatus(s.Status))
	}
}

// CreateScholar creates a new scholar record and computes its eligibility.
func (s *scholarServiceImpl) CreateScholar(ctx context.Context, scholar *models.Scholar) error {
	if scholar == nil || strings.TrimSpace(scholar.FullName) == "" {
		return fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(scholar.Email) != "" {
		exists, err := s.scholarRepo.ExistsByEmail(ctx, scholar.Email)
		if err != nil {
			return fmt.Errorf("error checking scholar email: %w", err)
		}
		if exists {
			return apperrors.ErrScholarAlreadyExists
		}
	}

	normalizeScholar(scholar)

	all, err := s.scholarRepo.GetAllUnpaged(ctx, dto.ScholarFilter{})
	if err != nil {
		return fmt.Errorf("error loading scholars for eligibility: %w", err)
	}
	scholar.Eligibility = string(eligibility.Check(scholar, all))

	if err := s.scholarRepo.Create(ctx, scholar); err != nil {
		return fmt.Errorf("error creating scholar: %w", err)
	}
	return nil
}

// GetScholarByID retrieves a scholar by ID
func (s *scholarServiceImpl) GetScholarByID(ctx context.Context, id int64) (*models.Scholar, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid scholar ID", apperrors.ErrValidationFailed)
	}

	scholar, err := s.scholarRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrScholarNotFound) {
			return nil, apperrors.ErrScholarNotFound
		}
		return nil, fmt.Errorf("error retrieving scholar: %w", err)
	}
	return scholar, nil
}

// GetScholars retrieves scholars matching the filter, paginated. Free-text
// faculty and type filters are resolved to their canonical forms before the
// query so any recognized variant matches stored records.
func (s *scholarServiceImpl) GetScholars(ctx context.Context, filter dto.ScholarFilter, page, size int) ([]*models.Scholar, int64, error) {
	if filter.Faculty != "" {
		if resolved := matching.ResolveFaculty(filter.Faculty); resolved != "" {
			filter.Faculty = resolved
		}
	}
	if filter.ScholarType != "" {
		if t, ok := models.ParseScholarType(filter.ScholarType); ok {
			filter.ScholarType = string(t)
		}
	}

	scholars, total, err := s.scholarRepo.GetAll(ctx, filter, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving scholars: %w", err)
	}
	return scholars, total, nil
}

// UpdateScholar updates the editable fields of a scholar record and
// recomputes its eligibility.
func (s *scholarServiceImpl) UpdateScholar(ctx context.Context, scholar *models.Scholar) error {
	if scholar == nil || scholar.ID <= 0 {
		return fmt.Errorf("%w: invalid scholar ID", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(scholar.FullName) == "" {
		return fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}

	normalizeScholar(scholar)

	if err := s.scholarRepo.Update(ctx, scholar); err != nil {
		if errors.Is(err, apperrors.ErrScholarNotFound) {
			return apperrors.ErrScholarNotFound
		}
		return fmt.Errorf("error updating scholar: %w", err)
	}

	all, err := s.scholarRepo.GetAllUnpaged(ctx, dto.ScholarFilter{})
	if err != nil {
		return fmt.Errorf("error loading scholars for eligibility: %w", err)
	}
	result := string(eligibility.Check(scholar, all))
	if result != scholar.Eligibility {
		if err := s.scholarRepo.SetEligibility(ctx, scholar.ID, result); err != nil {
			return fmt.Errorf("error storing eligibility: %w", err)
		}
		scholar.Eligibility = result
	}
	return nil
}

// DeleteScholar deletes a scholar by ID
func (s *scholarServiceImpl) DeleteScholar(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid scholar ID", apperrors.ErrValidationFailed)
	}

	err := s.scholarRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrScholarNotFound) {
			return apperrors.ErrScholarNotFound
		}
		return fmt.Errorf("error deleting scholar: %w", err)
	}
	return nil
}

// DeleteScholars deletes a set of scholars, returning how many were removed.
func (s *scholarServiceImpl) DeleteScholars(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no scholars selected", apperrors.ErrValidationFailed)
	}

	deleted, err := s.scholarRepo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("error deleting scholars: %w", err)
	}
	return deleted, nil
}

// UpdateMarks records examination marks for a scholar. An absent scholar
// keeps zero marks regardless of what the request carries.
func (s *scholarServiceImpl) UpdateMarks(ctx context.Context, id int64, req dto.UpdateMarksRequest) (*models.Scholar, error) {
	scholar, err := s.GetScholarByID(ctx, id)
	if err != nil {
		return nil, err
	}

	written, interview := req.WrittenMarks, req.InterviewMarks
	if req.Absent {
		written, interview = 0, 0
	}

	if err := s.scholarRepo.UpdateMarks(ctx, scholar.ID, written, interview, req.Absent); err != nil {
		return nil, fmt.Errorf("error updating marks: %w", err)
	}

	return s.GetScholarByID(ctx, id)
}

// ChangeStatus moves a scholar through the admission lifecycle. Transitions
// are validated against the state machine; anything else is rejected.
func (s *scholarServiceImpl) ChangeStatus(ctx context.Context, id int64, status string) (*models.Scholar, error) {
	next := models.ScholarStatus(strings.TrimSpace(status))
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, status)
	}

	scholar, err := s.GetScholarByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := models.CanonicalStatus(scholar.Status)
	if !current.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusChange, current, next)
	}

	if err := s.scholarRepo.UpdateStatus(ctx, scholar.ID, string(next)); err != nil {
		return nil, fmt.Errorf("error updating status: %w", err)
	}

	scholar.Status = string(next)
	return scholar, nil
}

// ForwardScholars forwards a set of scholars to the research coordinator.
// Items settle independently: one invalid scholar never blocks the rest.
func (s *scholarServiceImpl) ForwardScholars(ctx context.Context, ids []int64) (*dto.BatchResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no scholars selected", apperrors.ErrValidationFailed)
	}

	result := &dto.BatchResult{}
	for _, id := range ids {
		if err := s.forwardOne(ctx, id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.BatchItemError{
				ScholarID: id,
				Message:   err.Error(),
			})
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

func (s *scholarServiceImpl) forwardOne(ctx context.Context, id int64) error {
	scholar, err := s.GetScholarByID(ctx, id)
	if err != nil {
		return err
	}
	if scholar.Absent {
		return apperrors.ErrScholarAbsent
	}

	current := models.CanonicalStatus(scholar.Status)
	if !current.CanTransition(models.StatusForwarded) {
		return fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusChange, current, models.StatusForwarded)
	}

	return s.scholarRepo.UpdateStatus(ctx, scholar.ID, string(models.StatusForwarded))
}

// PublishDepartmentResult records the department stage result for a scholar.
func (s *scholarServiceImpl) PublishDepartmentResult(ctx context.Context, id int64, result string) error {
	scholar, err := s.GetScholarByID(ctx, id)
	if err != nil {
		return err
	}
	return s.scholarRepo.SetDeptResult(ctx, scholar.ID, result)
}

// PublishDirectorResult records the director stage result for a scholar.
func (s *scholarServiceImpl) PublishDirectorResult(ctx context.Context, id int64, result string) error {
	scholar, err := s.GetScholarByID(ctx, id)
	if err != nil {
		return err
	}
	return s.scholarRepo.SetResultDir(ctx, scholar.ID, result)
}

// ImportScholars parses a workbook and stores its rows. Rows settle
// independently; the summary carries every rejected row with its reason.
// Eligibility for the whole set is recomputed once at the end, after all
// rows are in, so cross-record duplicate checks see the full picture.
func (s *scholarServiceImpl) ImportScholars(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	scholars, rowErrors, err := spreadsheet.ParseScholars(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read workbook: %v", apperrors.ErrBadRequest, err)
	}

	summary := &dto.ImportSummary{}
	for _, re := range rowErrors {
		summary.Rejected++
		summary.RowErrors = append(summary.RowErrors, dto.ImportRowError{Row: re.Row, Message: re.Message})
	}

	for _, scholar := range scholars {
		if strings.TrimSpace(scholar.Email) != "" {
			exists, err := s.scholarRepo.ExistsByEmail(ctx, scholar.Email)
			if err != nil {
				return nil, fmt.Errorf("error checking scholar email: %w", err)
			}
			if exists {
				summary.Rejected++
				summary.RowErrors = append(summary.RowErrors, dto.ImportRowError{
					Message: fmt.Sprintf("scholar with email %s already exists", scholar.Email),
				})
				continue
			}
		}

		normalizeScholar(scholar)
		if err := s.scholarRepo.Create(ctx, scholar); err != nil {
			summary.Rejected++
			summary.RowErrors = append(summary.RowErrors, dto.ImportRowError{Message: err.Error()})
			continue
		}
		summary.Imported++
	}

	if summary.Imported > 0 {
		if _, err := s.RecomputeEligibility(ctx); err != nil {
			logger.Warn().Err(err).Msg("Eligibility recompute after import failed")
		}
	}

	return summary, nil
}

// ExportScholars writes the scholars matching the filter as a workbook.
func (s *scholarServiceImpl) ExportScholars(ctx context.Context, filter dto.ScholarFilter, w io.Writer) error {
	if filter.Faculty != "" {
		if resolved := matching.ResolveFaculty(filter.Faculty); resolved != "" {
			filter.Faculty = resolved
		}
	}

	scholars, err := s.scholarRepo.GetAllUnpaged(ctx, filter)
	if err != nil {
		return fmt.Errorf("error retrieving scholars: %w", err)
	}

	return spreadsheet.WriteScholars(w, scholars)
}

// DuplicateReport groups scholars that share a phone number, email or name.
func (s *scholarServiceImpl) DuplicateReport(ctx context.Context) ([]eligibility.DuplicateGroup, error) {
	scholars, err := s.scholarRepo.GetAllUnpaged(ctx, dto.ScholarFilter{})
	if err != nil {
		return nil, fmt.Errorf("error retrieving scholars: %w", err)
	}
	return eligibility.DuplicateGroups(scholars), nil
}

// RecomputeEligibility re-evaluates every scholar against the full record
// set and persists the flags that changed.
func (s *scholarServiceImpl) RecomputeEligibility(ctx context.Context) (*dto.EligibilityRecomputeResult, error) {
	scholars, err := s.scholarRepo.GetAllUnpaged(ctx, dto.ScholarFilter{})
	if err != nil {
		return nil, fmt.Errorf("error retrieving scholars: %w", err)
	}

	result := &dto.EligibilityRecomputeResult{Total: len(scholars)}
	for _, scholar := range scholars {
		computed := string(eligibility.Check(scholar, scholars))
		if computed == scholar.Eligibility {
			continue
		}
		if err := s.scholarRepo.SetEligibility(ctx, scholar.ID, computed); err != nil {
			return nil, fmt.Errorf("error storing eligibility: %w", err)
		}
		scholar.Eligibility = computed
		result.Changed++
	}
	return result, nil
}
