package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/services"
	"github.com/yigit/phdportal/internal/middleware"
)

// AssignmentController handles supervisor assignment operations
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// AssignScholar places a scholar with a supervisor
// @Summary Assign a scholar to a supervisor
// @Description Places a scholar in one of the supervisor's capacity buckets. The slot is taken and the scholar record written in one transaction; a full bucket rejects the assignment.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supervisor ID"
// @Param request body dto.AssignScholarRequest true "Scholar and capacity bucket"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Scholar assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request, absent scholar or unknown scholar type"
// @Failure 404 {object} dto.ErrorResponse "Scholar or supervisor not found"
// @Failure 409 {object} dto.ErrorResponse "No vacancy or scholar already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/{id}/assignments [post]
func (c *AssignmentController) AssignScholar(ctx *gin.Context) {
	supervisorID, ok := parseSupervisorID(ctx)
	if !ok {
		return
	}

	var req dto.AssignScholarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.assignmentService.Assign(ctx, supervisorID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      assignment,
		Timestamp: time.Now(),
	})
}

// UnassignScholar releases a scholar from their supervisor
// @Summary Unassign a scholar
// @Description Releases a scholar from their supervisor and returns the slot. The counter never goes below zero.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UnassignScholarRequest true "Scholar to release"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Scholar released"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or scholar not assigned"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/unassign [post]
func (c *AssignmentController) UnassignScholar(ctx *gin.Context) {
	var req dto.UnassignScholarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid unassign data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.assignmentService.Unassign(ctx, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Scholar released"},
		Timestamp: time.Now(),
	})
}

// GetCandidates lists assignable scholars for a supervisor
// @Summary List assignment candidates
// @Description Lists unassigned, eligible, present scholars whose faculty and department match the supervisor's, best total score first
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supervisor ID"
// @Param type query string false "Narrow to one scholar type"
// @Success 200 {object} dto.APIResponse{data=[]models.Scholar} "Candidates retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid supervisor ID or scholar type"
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisors/{id}/candidates [get]
func (c *AssignmentController) GetCandidates(ctx *gin.Context) {
	supervisorID, ok := parseSupervisorID(ctx)
	if !ok {
		return
	}

	var filter dto.CandidateFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	candidates, err := c.assignmentService.Candidates(ctx, supervisorID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      candidates,
		Timestamp: time.Now(),
	})
}
