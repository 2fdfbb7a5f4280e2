package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/db"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
)

type fakeScholarStore struct {
	scholars map[int64]*models.Scholar
}

func (f *fakeScholarStore) GetByID(_ context.Context, id int64) (*models.Scholar, error) {
	s, ok := f.scholars[id]
	if !ok {
		return nil, apperrors.ErrScholarNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeScholarStore) GetUnassignedCandidates(_ context.Context) ([]*models.Scholar, error) {
	var out []*models.Scholar
	for _, s := range f.scholars {
		if !s.IsAssigned() && !s.Absent && s.Eligibility == "Eligible" {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeScholarStore) AssignSupervisor(_ context.Context, _ repositories.Querier, id int64, name string, scholarType models.ScholarType) error {
	s, ok := f.scholars[id]
	if !ok {
		return apperrors.ErrScholarNotFound
	}
	if s.SupervisorName != nil {
		return apperrors.ErrAlreadyAssigned
	}
	status := models.SupervisorStatusAdmitted
	s.SupervisorName = &name
	s.SupervisorStatus = &status
	s.Type = string(scholarType)
	return nil
}

func (f *fakeScholarStore) ClearSupervisor(_ context.Context, _ repositories.Querier, id int64) error {
	s, ok := f.scholars[id]
	if !ok {
		return apperrors.ErrScholarNotFound
	}
	s.SupervisorName = nil
	s.SupervisorStatus = nil
	return nil
}

type fakeSupervisorStore struct {
	supervisors map[int64]*models.Supervisor
}

func (f *fakeSupervisorStore) GetByID(_ context.Context, id int64) (*models.Supervisor, error) {
	s, ok := f.supervisors[id]
	if !ok {
		return nil, apperrors.ErrSupervisorNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSupervisorStore) GetByName(_ context.Context, name string) (*models.Supervisor, error) {
	for _, s := range f.supervisors {
		if s.Name == name {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrSupervisorNotFound
}

// IncrementCurrent mirrors the conditional SQL update: it only succeeds while
// the counter is under its limit.
func (f *fakeSupervisorStore) IncrementCurrent(_ context.Context, _ repositories.Querier, id int64, t models.ScholarType) error {
	s, ok := f.supervisors[id]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	if s.Current(t) >= s.Max(t) {
		return apperrors.ErrNoVacancy
	}
	f.addCurrent(s, t, 1)
	return nil
}

func (f *fakeSupervisorStore) DecrementCurrent(_ context.Context, _ repositories.Querier, id int64, t models.ScholarType) error {
	s, ok := f.supervisors[id]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	if s.Current(t) > 0 {
		f.addCurrent(s, t, -1)
	}
	return nil
}

func (f *fakeSupervisorStore) addCurrent(s *models.Supervisor, t models.ScholarType, delta int) {
	switch t {
	case models.TypeFullTime:
		s.CurrentFullTime += delta
	case models.TypePartTimeInternal:
		s.CurrentPartTimeInternal += delta
	case models.TypePartTimeExternal:
		s.CurrentPartTimeExternal += delta
	case models.TypePartTimeIndustry:
		s.CurrentPartTimeIndustry += delta
	}
}

type fakeDepartmentStore struct {
	departments map[int64]*models.Department
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return d, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

func newAssignmentFixture() (*fakeScholarStore, *fakeSupervisorStore, *fakeDepartmentStore, AssignmentService) {
	faculty := &models.Faculty{ID: 1, Name: "Faculty of Engineering & Technology", Code: "ET"}
	department := &models.Department{ID: 1, FacultyID: 1, Name: "Computer Science", Faculty: faculty}

	scholars := &fakeScholarStore{scholars: map[int64]*models.Scholar{
		1: {
			ID: 1, FullName: "Asha Nair", Email: "asha@example.com",
			Type: "Full Time", FacultyName: faculty.Name, DepartmentName: department.Name,
			TotalScore: 81.5, Eligibility: "Eligible", Status: "Forwarded",
		},
		2: {
			ID: 2, FullName: "Vikram Rao", Email: "vikram@example.com",
			Type: "Full Time", FacultyName: faculty.Name, DepartmentName: department.Name,
			TotalScore: 74.0, Eligibility: "Eligible", Status: "Forwarded",
		},
	}}
	supervisors := &fakeSupervisorStore{supervisors: map[int64]*models.Supervisor{
		1: {
			ID: 1, Name: "Dr. Meena Iyer", Email: "meena@example.com",
			FacultyID: 1, DepartmentID: 1,
			MaxFullTime: 1, MaxPartTimeInternal: 2,
		},
	}}
	departments := &fakeDepartmentStore{departments: map[int64]*models.Department{1: department}}

	svc := NewAssignmentService(scholars, supervisors, departments, fakeTxRunner{})
	return scholars, supervisors, departments, svc
}

func TestAssignWritesBothSides(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	resp, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Full Time"})
	require.NoError(t, err)
	require.Equal(t, "Dr. Meena Iyer", resp.SupervisorName)
	require.Equal(t, "Full Time", resp.ScholarType)
	require.Equal(t, 0, resp.RemainingVacancy)

	stored := scholars.scholars[1]
	require.NotNil(t, stored.SupervisorName)
	require.Equal(t, "Dr. Meena Iyer", *stored.SupervisorName)
	require.NotNil(t, stored.SupervisorStatus)
	require.Equal(t, models.SupervisorStatusAdmitted, *stored.SupervisorStatus)

	require.Equal(t, 1, supervisors.supervisors[1].CurrentFullTime)
}

func TestAssignFullCapacityRejectsSecond(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Full Time"})
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 2, ScholarType: "Full Time"})
	require.ErrorIs(t, err, apperrors.ErrNoVacancy)

	// The losing scholar saw no write at all
	require.Nil(t, scholars.scholars[2].SupervisorName)
	require.Equal(t, 1, supervisors.supervisors[1].CurrentFullTime)
}

func TestAssignAlreadyAssignedScholar(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	name := "Dr. Somebody Else"
	scholars.scholars[1].SupervisorName = &name

	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Full Time"})
	require.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)
}

func TestAssignAbsentScholar(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	scholars.scholars[1].Absent = true

	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Full Time"})
	require.ErrorIs(t, err, apperrors.ErrScholarAbsent)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)
}

func TestAssignUnknownSupervisor(t *testing.T) {
	_, _, _, svc := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), 99, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Full Time"})
	require.ErrorIs(t, err, apperrors.ErrSupervisorNotFound)
}

func TestAssignInvalidType(t *testing.T) {
	_, _, _, svc := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Half Time"})
	require.ErrorIs(t, err, apperrors.ErrInvalidScholarType)
}

func TestAssignWithoutTypeRejected(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1})
	require.ErrorIs(t, err, apperrors.ErrNoTypeSelected)

	// No write on either side
	require.Nil(t, scholars.scholars[1].SupervisorName)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)
}

func TestAssignTypeFromRequestOverridesRecord(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	resp, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{
		ScholarID: 1, ScholarType: "Part Time Internal",
	})
	require.NoError(t, err)
	require.Equal(t, "Part Time Internal", resp.ScholarType)
	require.Equal(t, 1, supervisors.supervisors[1].CurrentPartTimeInternal)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)

	// The consumed bucket is pinned onto the record
	require.Equal(t, "Part Time Internal", scholars.scholars[1].Type)
}

func TestUnassignReleasesOverriddenBucket(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	// Record says Full Time, assignment consumed the Part Time Internal slot
	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{
		ScholarID: 1, ScholarType: "Part Time Internal",
	})
	require.NoError(t, err)

	err = svc.Unassign(context.Background(), dto.UnassignScholarRequest{ScholarID: 1})
	require.NoError(t, err)

	// The slot that was taken is the slot that comes back
	require.Equal(t, 0, supervisors.supervisors[1].CurrentPartTimeInternal)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)
	require.Nil(t, scholars.scholars[1].SupervisorName)
}

func TestUnassignReleasesSlot(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), 1, dto.AssignScholarRequest{ScholarID: 1, ScholarType: "Full Time"})
	require.NoError(t, err)

	err = svc.Unassign(context.Background(), dto.UnassignScholarRequest{ScholarID: 1})
	require.NoError(t, err)

	require.Nil(t, scholars.scholars[1].SupervisorName)
	require.Nil(t, scholars.scholars[1].SupervisorStatus)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)
}

func TestUnassignNotAssigned(t *testing.T) {
	_, _, _, svc := newAssignmentFixture()

	err := svc.Unassign(context.Background(), dto.UnassignScholarRequest{ScholarID: 1})
	require.ErrorIs(t, err, apperrors.ErrNotAssigned)
}

func TestUnassignNeverGoesNegative(t *testing.T) {
	scholars, supervisors, _, svc := newAssignmentFixture()

	// Assigned scholar whose counter drifted to zero out of band
	name := "Dr. Meena Iyer"
	status := models.SupervisorStatusAdmitted
	scholars.scholars[1].SupervisorName = &name
	scholars.scholars[1].SupervisorStatus = &status

	err := svc.Unassign(context.Background(), dto.UnassignScholarRequest{ScholarID: 1})
	require.NoError(t, err)
	require.Equal(t, 0, supervisors.supervisors[1].CurrentFullTime)
}

func TestCandidatesMatchDepartment(t *testing.T) {
	scholars, _, _, svc := newAssignmentFixture()

	// A scholar from another department never shows up
	scholars.scholars[3] = &models.Scholar{
		ID: 3, FullName: "Ravi Menon",
		Type: "Full Time", FacultyName: "Faculty of Management", DepartmentName: "Business Administration",
		TotalScore: 90, Eligibility: "Eligible", Status: "Forwarded",
	}

	candidates, err := svc.Candidates(context.Background(), 1, dto.CandidateFilter{})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		require.Equal(t, "Computer Science", c.DepartmentName)
	}
}

func TestCandidatesFallBackToProgram(t *testing.T) {
	scholars, _, _, svc := newAssignmentFixture()

	// Imported row with no department name; only the program string says
	// where the scholar belongs.
	scholars.scholars[4] = &models.Scholar{
		ID: 4, FullName: "Divya Pillai",
		Type: "Full Time", FacultyName: "Faculty of Engineering & Technology",
		Program:    "Ph.D - Computer Science (Full Time)",
		TotalScore: 68.0, Eligibility: "Eligible", Status: "Forwarded",
	}

	candidates, err := svc.Candidates(context.Background(), 1, dto.CandidateFilter{})
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	var names []string
	for _, c := range candidates {
		names = append(names, c.FullName)
	}
	require.Contains(t, names, "Divya Pillai")
}

func TestCandidatesTypeFilter(t *testing.T) {
	scholars, _, _, svc := newAssignmentFixture()

	scholars.scholars[2].Type = "Part Time Internal"

	candidates, err := svc.Candidates(context.Background(), 1, dto.CandidateFilter{ScholarType: "pti"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "Vikram Rao", candidates[0].FullName)
}
