package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/app/services"
	"github.com/EgorTarasov/ldt-2023/internal/metrics"
	"github.com/EgorTarasov/ldt-2023/internal/middleware"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/helpers"
)

// ApplicationController handles intern application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
	metrics            *metrics.Registry
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, registry *metrics.Registry) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		metrics:            registry,
	}
}

// Submit stores the caller's internship application
// @Summary Submit an internship application
// @Description Screens the application immediately; resubmission replaces the previous one
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplicationCreateRequest true "Application data"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid application data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a candidate"
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.ApplicationCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	app, err := c.applicationService.Submit(ctx, middleware.CurrentUser(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.metrics != nil {
		c.metrics.ApplicationsSubmitted.WithLabelValues(string(app.Status)).Inc()
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromApplication(app),
		Timestamp: time.Now(),
	})
}

// Get returns one application
// @Summary Get an application
// @Description Applicants see their own application; curators see any
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant user ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application"
// @Failure 403 {object} dto.ErrorResponse "Not the applicant or a curator"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	app, err := c.applicationService.Get(ctx, middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromApplication(app),
		Timestamp: time.Now(),
	})
}

// List returns a page of applications for curator review
// @Summary List applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Status filter" Enums(unverified, verified, approved, declined)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Application page"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a curator"
// @Router /applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.ApplicationStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ApplicationStatus(raw)
		status = &s
	}

	apps, pagination, err := c.applicationService.List(ctx, middleware.CurrentUser(ctx), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PagedResponse{
			Items:      dto.FromApplications(apps),
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// Approve accepts an application and invites the applicant
// @Summary Approve an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant user ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Application approved"
// @Failure 409 {object} dto.ErrorResponse "Application already declined"
// @Failure 502 {object} dto.ErrorResponse "Approval stored but the email failed"
// @Router /applications/{id}/approve [post]
func (c *ApplicationController) Approve(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicationService.Approve(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "application approved"},
		Timestamp: time.Now(),
	})
}

// Decline rejects an application
// @Summary Decline an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant user ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Application declined"
// @Failure 409 {object} dto.ErrorResponse "Application already approved"
// @Router /applications/{id}/decline [post]
func (c *ApplicationController) Decline(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicationService.Decline(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "application declined"},
		Timestamp: time.Now(),
	})
}

// Stats returns per-status application counts
// @Summary Application statistics
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationStatsResponse} "Counts by status"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a curator"
// @Router /applications/stats [get]
func (c *ApplicationController) Stats(ctx *gin.Context) {
	stats, err := c.applicationService.Stats(ctx, middleware.CurrentUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}
