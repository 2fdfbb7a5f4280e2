package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/services"
	"github.com/yigit/phdportal/internal/middleware"
	"github.com/yigit/phdportal/internal/pkg/helpers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ScholarController handles scholar-related operations
type ScholarController struct {
	scholarService services.ScholarService
}

// NewScholarController creates a new ScholarController
func NewScholarController(scholarService services.ScholarService) *ScholarController {
	return &ScholarController{
		scholarService: scholarService,
	}
}

func parseScholarID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid scholar ID")
		errorDetail = errorDetail.WithDetails("Scholar ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateScholar handles scholar creation
// @Summary Create a new scholar record
// @Description Creates a scholar record. Type, faculty and status are canonicalized and eligibility is computed on the way in.
// @Tags scholars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Scholar true "Scholar information"
// @Success 201 {object} dto.APIResponse{data=models.Scholar} "Scholar created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Scholar already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars [post]
func (c *ScholarController) CreateScholar(ctx *gin.Context) {
	var scholar models.Scholar
	if err := ctx.ShouldBindJSON(&scholar); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid scholar data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.scholarService.CreateScholar(ctx, &scholar); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// GetScholarByID retrieves a scholar by ID
// @Summary Get scholar by ID
// @Description Retrieves a specific scholar record by its ID
// @Tags scholars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Success 200 {object} dto.APIResponse{data=models.Scholar} "Scholar retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid scholar ID"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id} [get]
func (c *ScholarController) GetScholarByID(ctx *gin.Context) {
	id, ok := parseScholarID(ctx)
	if !ok {
		return
	}

	scholar, err := c.scholarService.GetScholarByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// GetScholars retrieves scholars with filters and pagination
// @Summary List scholars
// @Description Retrieves scholars matching the filters, best total score first. Faculty and type filters accept any recognized variant spelling.
// @Tags scholars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param faculty query string false "Faculty name or variant"
// @Param department query string false "Department name"
// @Param status query string false "Status prefix"
// @Param type query string false "Scholar type or abbreviation"
// @Param eligibility query string false "Eligibility flag"
// @Param search query string false "Free text over name, email and mobile"
// @Param unassigned query bool false "Only scholars without a supervisor"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(25)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Scholars retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars [get]
func (c *ScholarController) GetScholars(ctx *gin.Context) {
	var filter dto.ScholarFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	scholars, total, err := c.scholarService.GetScholars(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      scholars,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateScholar updates a scholar record
// @Summary Update a scholar record
// @Description Updates the editable fields of a scholar and recomputes eligibility
// @Tags scholars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Param request body models.Scholar true "Updated scholar information"
// @Success 200 {object} dto.APIResponse{data=models.Scholar} "Scholar updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id} [put]
func (c *ScholarController) UpdateScholar(ctx *gin.Context) {
	id, ok := parseScholarID(ctx)
	if !ok {
		return
	}

	var scholar models.Scholar
	if err := ctx.ShouldBindJSON(&scholar); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid scholar data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	scholar.ID = id

	if err := c.scholarService.UpdateScholar(ctx, &scholar); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// DeleteScholar deletes a scholar record
// @Summary Delete a scholar record
// @Description Deletes a scholar record by its ID
// @Tags scholars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Success 204 "Scholar deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid scholar ID"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id} [delete]
func (c *ScholarController) DeleteScholar(ctx *gin.Context) {
	id, ok := parseScholarID(ctx)
	if !ok {
		return
	}

	if err := c.scholarService.DeleteScholar(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdateMarks records examination marks
// @Summary Record examination marks
// @Description Records written and interview marks for a scholar. Absent scholars keep zero marks.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Param request body dto.UpdateMarksRequest true "Marks"
// @Success 200 {object} dto.APIResponse{data=models.Scholar} "Marks recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/marks [put]
func (c *ScholarController) UpdateMarks(ctx *gin.Context) {
	id, ok := parseScholarID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid marks data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	scholar, err := c.scholarService.UpdateMarks(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// ChangeStatus moves a scholar through the admission lifecycle
// @Summary Change scholar status
// @Description Moves a scholar to a new lifecycle state. Illegal transitions are rejected.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Param request body dto.StatusChangeRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Scholar} "Status changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid status or illegal transition"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/status [put]
func (c *ScholarController) ChangeStatus(ctx *gin.Context) {
	id, ok := parseScholarID(ctx)
	if !ok {
		return
	}

	var req dto.StatusChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	scholar, err := c.scholarService.ChangeStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// ForwardScholars forwards a batch of scholars to the research coordinator
// @Summary Forward scholars
// @Description Forwards a set of scholars to the research coordinator. Items settle independently; the result carries per-item failures.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchForwardRequest true "Scholar IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResult} "Batch settled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/forward [post]
func (c *ScholarController) ForwardScholars(ctx *gin.Context) {
	var req dto.BatchForwardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid forward request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.scholarService.ForwardScholars(ctx, req.ScholarIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// PublishDepartmentResult records the department stage result
// @Summary Publish department result
// @Description Records the department stage result for a scholar
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Param request body dto.PublishRequest true "Result"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Result recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/department-result [put]
func (c *ScholarController) PublishDepartmentResult(ctx *gin.Context) {
	c.publishResult(ctx, c.scholarService.PublishDepartmentResult)
}

// PublishDirectorResult records the director stage result
// @Summary Publish director result
// @Description Records the director stage result for a scholar
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID"
// @Param request body dto.PublishRequest true "Result"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Result recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/director-result [put]
func (c *ScholarController) PublishDirectorResult(ctx *gin.Context) {
	c.publishResult(ctx, c.scholarService.PublishDirectorResult)
}

func (c *ScholarController) publishResult(ctx *gin.Context, publish func(ctx context.Context, id int64, result string) error) {
	id, ok := parseScholarID(ctx)
	if !ok {
		return
	}

	var req dto.PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid result data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := publish(ctx, id, req.Result); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Result recorded"},
		Timestamp: time.Now(),
	})
}

// ImportScholars imports scholar records from a workbook
// @Summary Import scholars from a spreadsheet
// @Description Parses an uploaded xlsx workbook and stores its rows. Rows settle independently; the summary carries rejected rows with reasons.
// @Tags scholars
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Workbook (xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import settled"
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable workbook"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/import [post]
func (c *ScholarController) ImportScholars(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Workbook file is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not read uploaded file")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	summary, err := c.scholarService.ImportScholars(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summary,
		Timestamp: time.Now(),
	})
}

// ExportScholars streams the matching scholars as a workbook
// @Summary Export scholars to a spreadsheet
// @Description Streams the scholars matching the filters as an xlsx workbook
// @Tags scholars
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param faculty query string false "Faculty name or variant"
// @Param department query string false "Department name"
// @Param status query string false "Status prefix"
// @Success 200 {file} binary "Workbook"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/export [get]
func (c *ScholarController) ExportScholars(ctx *gin.Context) {
	var filter dto.ScholarFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filename := fmt.Sprintf("scholars-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Header("Content-Type", xlsxContentType)

	if err := c.scholarService.ExportScholars(ctx, filter, ctx.Writer); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
}

// GetDuplicateReport lists scholars sharing a phone, email or name
// @Summary Duplicate report
// @Description Groups scholars that share a phone number, email or name. Each scholar appears in at most one group.
// @Tags scholars
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Duplicate groups"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/duplicates [get]
func (c *ScholarController) GetDuplicateReport(ctx *gin.Context) {
	groups, err := c.scholarService.DuplicateReport(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      groups,
		Timestamp: time.Now(),
	})
}

// RecomputeEligibility re-evaluates eligibility over the whole record set
// @Summary Recompute eligibility
// @Description Re-evaluates every scholar against the full record set and persists changed flags
// @Tags scholars
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityRecomputeResult} "Recompute finished"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/eligibility/recompute [post]
func (c *ScholarController) RecomputeEligibility(ctx *gin.Context) {
	result, err := c.scholarService.RecomputeEligibility(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
