package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
)

type stubAssignmentService struct {
	assignResult *dto.AssignmentResponse
	assignErr    error
	unassignErr  error
	candidates   []*models.Scholar

	gotSupervisorID int64
	gotRequest      dto.AssignScholarRequest
}

func (s *stubAssignmentService) Assign(_ context.Context, supervisorID int64, req dto.AssignScholarRequest) (*dto.AssignmentResponse, error) {
	s.gotSupervisorID = supervisorID
	s.gotRequest = req
	return s.assignResult, s.assignErr
}

func (s *stubAssignmentService) Unassign(_ context.Context, _ dto.UnassignScholarRequest) error {
	return s.unassignErr
}

func (s *stubAssignmentService) Candidates(_ context.Context, supervisorID int64, _ dto.CandidateFilter) ([]*models.Scholar, error) {
	s.gotSupervisorID = supervisorID
	return s.candidates, nil
}

func newAssignmentRouter(svc *stubAssignmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewAssignmentController(svc)
	router.POST("/supervisors/:id/assignments", ctrl.AssignScholar)
	router.POST("/assignments/unassign", ctrl.UnassignScholar)
	router.GET("/supervisors/:id/candidates", ctrl.GetCandidates)
	return router
}

func TestAssignScholarOK(t *testing.T) {
	svc := &stubAssignmentService{
		assignResult: &dto.AssignmentResponse{
			ScholarID:        7,
			ScholarName:      "Asha Nair",
			SupervisorID:     3,
			SupervisorName:   "Dr. Meena Iyer",
			ScholarType:      string(models.TypeFullTime),
			RemainingVacancy: 0,
		},
	}
	router := newAssignmentRouter(svc)

	body, _ := json.Marshal(dto.AssignScholarRequest{ScholarID: 7, ScholarType: "Full Time"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/supervisors/3/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.gotSupervisorID)
	assert.Equal(t, int64(7), svc.gotRequest.ScholarID)

	var resp struct {
		Data dto.AssignmentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dr. Meena Iyer", resp.Data.SupervisorName)
	assert.Equal(t, 0, resp.Data.RemainingVacancy)
}

func TestAssignScholarBadSupervisorID(t *testing.T) {
	router := newAssignmentRouter(&stubAssignmentService{})

	body, _ := json.Marshal(dto.AssignScholarRequest{ScholarID: 7})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/supervisors/abc/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignScholarMissingScholarID(t *testing.T) {
	router := newAssignmentRouter(&stubAssignmentService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/supervisors/3/assignments", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignScholarNoVacancyMapsToConflict(t *testing.T) {
	svc := &stubAssignmentService{assignErr: apperrors.ErrNoVacancy}
	router := newAssignmentRouter(svc)

	body, _ := json.Marshal(dto.AssignScholarRequest{ScholarID: 7, ScholarType: "Full Time"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/supervisors/3/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeNoVacancy, resp.Error.Code)
}

func TestAssignScholarAlreadyAssignedMapsToConflict(t *testing.T) {
	svc := &stubAssignmentService{assignErr: apperrors.ErrAlreadyAssigned}
	router := newAssignmentRouter(svc)

	body, _ := json.Marshal(dto.AssignScholarRequest{ScholarID: 7, ScholarType: "Full Time"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/supervisors/3/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeAlreadyAssigned, resp.Error.Code)
}

func TestUnassignScholarNotAssignedMapsToBadRequest(t *testing.T) {
	svc := &stubAssignmentService{unassignErr: apperrors.ErrNotAssigned}
	router := newAssignmentRouter(svc)

	body, _ := json.Marshal(dto.UnassignScholarRequest{ScholarID: 7})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assignments/unassign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCandidatesReturnsList(t *testing.T) {
	svc := &stubAssignmentService{
		candidates: []*models.Scholar{
			{ID: 1, FullName: "Asha Nair", TotalScore: 81.5},
			{ID: 2, FullName: "Vikram Rao", TotalScore: 74.0},
		},
	}
	router := newAssignmentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/supervisors/3/candidates?type=pti", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.gotSupervisorID)

	var resp struct {
		Data []models.Scholar `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Asha Nair", resp.Data[0].FullName)
}
