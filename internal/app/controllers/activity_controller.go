package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/app/services"
	"github.com/EgorTarasov/ldt-2023/internal/middleware"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/helpers"
)

// ActivityController handles the candidate scoring track endpoints
type ActivityController struct {
	activityService *services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService *services.ActivityService) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

// Events lists all educational-track events
// @Summary List events
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events"
// @Router /activity/events [get]
func (c *ActivityController) Events(ctx *gin.Context) {
	events, err := c.activityService.Events(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      events,
		Timestamp: time.Now(),
	})
}

// Leaderboard returns candidates ordered by total score
// @Summary Candidate leaderboard
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Leaderboard page"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Router /activity/leaderboard [get]
func (c *ActivityController) Leaderboard(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	activities, pagination, err := c.activityService.Leaderboard(ctx, middleware.CurrentUser(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PagedResponse{
			Items:      activities,
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// Breakdown returns the per-event scores for one candidate
// @Summary Candidate score breakdown
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CandidateEventScore} "Per-event scores"
// @Failure 403 {object} dto.ErrorResponse "Not the candidate or a curator"
// @Router /activity/{id} [get]
func (c *ActivityController) Breakdown(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	scores, err := c.activityService.Breakdown(ctx, middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scores,
		Timestamp: time.Now(),
	})
}
