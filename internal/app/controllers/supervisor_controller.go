package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/services"
	"github.com/yigit/phdportal/internal/middleware"
)

// SupervisorController handles supervisor-related operations
type SupervisorController struct {
	supervisorService services.SupervisorService
}

// NewSupervisorController creates a new SupervisorController
func NewSupervisorController(supervisorService services.SupervisorService) *SupervisorController {
	return &SupervisorController{
		supervisorService: supervisorService,
	}
}

func parseSupervisorID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid supervisor ID")
		errorDetail = errorDetail.WithDetails("Supervisor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateSupervisor handles supervisor creation
// @Summary Create a new supervisor
// @Description Creates a supervisor with per-type capacity limits
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSupervisorRequest true "Supervisor information"
// @Success 201 {object} dto.APIResponse{data=models.Supervisor} "Supervisor created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors [post]
func (c *SupervisorController) CreateSupervisor(ctx *gin.Context) {
	var req dto.CreateSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid supervisor data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	supervisor, err := c.supervisorService.CreateSupervisor(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      supervisor,
		Timestamp: time.Now(),
	})
}

// GetSupervisorByID retrieves a supervisor by ID
// @Summary Get supervisor by ID
// @Description Retrieves a supervisor with its capacity counters
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supervisor ID"
// @Success 200 {object} dto.APIResponse{data=models.Supervisor} "Supervisor retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid supervisor ID"
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/{id} [get]
func (c *SupervisorController) GetSupervisorByID(ctx *gin.Context) {
	id, ok := parseSupervisorID(ctx)
	if !ok {
		return
	}

	supervisor, err := c.supervisorService.GetSupervisorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      supervisor,
		Timestamp: time.Now(),
	})
}

// GetSupervisors lists supervisors
// @Summary List supervisors
// @Description Retrieves supervisors, optionally narrowed to one department
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Supervisor} "Supervisors retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors [get]
func (c *SupervisorController) GetSupervisors(ctx *gin.Context) {
	var departmentID int64
	if departmentIDStr := ctx.Query("departmentId"); departmentIDStr != "" {
		parsed, err := strconv.ParseInt(departmentIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department ID")
			errorDetail = errorDetail.WithDetails("Department ID must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		departmentID = parsed
	}

	supervisors, err := c.supervisorService.GetSupervisors(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      supervisors,
		Timestamp: time.Now(),
	})
}

// UpdateSupervisor updates a supervisor
// @Summary Update a supervisor
// @Description Updates a supervisor's profile and capacity limits. Occupied-slot counters are never written here.
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supervisor ID"
// @Param request body dto.UpdateSupervisorRequest true "Updated supervisor information"
// @Success 200 {object} dto.APIResponse{data=models.Supervisor} "Supervisor updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/{id} [put]
func (c *SupervisorController) UpdateSupervisor(ctx *gin.Context) {
	id, ok := parseSupervisorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid supervisor data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	supervisor, err := c.supervisorService.UpdateSupervisor(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      supervisor,
		Timestamp: time.Now(),
	})
}

// DeleteSupervisor deletes a supervisor
// @Summary Delete a supervisor
// @Description Deletes a supervisor. Supervisors with admitted scholars cannot be removed.
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supervisor ID"
// @Success 204 "Supervisor deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid supervisor ID"
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Failure 409 {object} dto.ErrorResponse "Supervisor still has admitted scholars"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/{id} [delete]
func (c *SupervisorController) DeleteSupervisor(ctx *gin.Context) {
	id, ok := parseSupervisorID(ctx)
	if !ok {
		return
	}

	if err := c.supervisorService.DeleteSupervisor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetVacancies returns the per-type vacancy view of a supervisor
// @Summary Get supervisor vacancies
// @Description Returns the remaining slots per scholar type, derived from limits and counters
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supervisor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SupervisorVacancies} "Vacancies retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid supervisor ID"
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/{id}/vacancies [get]
func (c *SupervisorController) GetVacancies(ctx *gin.Context) {
	id, ok := parseSupervisorID(ctx)
	if !ok {
		return
	}

	vacancies, err := c.supervisorService.GetVacancies(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      vacancies,
		Timestamp: time.Now(),
	})
}

// ReconcileCounters recounts admitted scholars and corrects drifted counters
// @Summary Reconcile supervisor counters
// @Description Recounts admitted scholars per supervisor and type and rewrites any stored counter that disagrees
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ReconcileResult} "Reconciliation finished"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/reconcile [post]
func (c *SupervisorController) ReconcileCounters(ctx *gin.Context) {
	result, err := c.supervisorService.ReconcileCounters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
