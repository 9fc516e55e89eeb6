package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/app/services"
	"github.com/EgorTarasov/ldt-2023/internal/middleware"
)

// FeedbackController handles user feedback endpoints
type FeedbackController struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

// Create stores feedback about another user
// @Summary Leave feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FeedbackCreateRequest true "Feedback data"
// @Success 201 {object} dto.APIResponse{data=dto.FeedbackResponse} "Feedback stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid feedback data"
// @Failure 404 {object} dto.ErrorResponse "Target user not found"
// @Router /feedback [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	var req dto.FeedbackCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feedback, err := c.feedbackService.Create(ctx, middleware.CurrentUser(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromFeedback(feedback),
		Timestamp: time.Now(),
	})
}

// About lists the feedback left about a user
// @Summary Feedback about a user
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FeedbackResponse} "Feedback"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /feedback/about/{id} [get]
func (c *FeedbackController) About(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	feedbacks, err := c.feedbackService.About(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromFeedbacks(feedbacks),
		Timestamp: time.Now(),
	})
}

// Mine lists the feedback the caller has left
// @Summary Own feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FeedbackResponse} "Feedback"
// @Router /feedback/my [get]
func (c *FeedbackController) Mine(ctx *gin.Context) {
	feedbacks, err := c.feedbackService.Mine(ctx, middleware.CurrentUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromFeedbacks(feedbacks),
		Timestamp: time.Now(),
	})
}

// Delete removes the caller's own feedback
// @Summary Delete own feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Feedback deleted"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Router /feedback/{id} [delete]
func (c *FeedbackController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.feedbackService.Delete(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "feedback deleted"},
		Timestamp: time.Now(),
	})
}
