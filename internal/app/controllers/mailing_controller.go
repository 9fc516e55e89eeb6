package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/app/services"
	"github.com/EgorTarasov/ldt-2023/internal/metrics"
	"github.com/EgorTarasov/ldt-2023/internal/middleware"
)

// Mailing template labels for metrics.
const (
	templateSchoolInvite  = "school_invite"
	templateEventInfo     = "event_info"
	templateEventReminder = "event_reminder"
	templateCredentials   = "credentials"
)

// MailingController handles curator mailing endpoints
type MailingController struct {
	mailingService *services.MailingService
	metrics        *metrics.Registry
}

// NewMailingController creates a new MailingController
func NewMailingController(mailingService *services.MailingService, registry *metrics.Registry) *MailingController {
	return &MailingController{
		mailingService: mailingService,
		metrics:        registry,
	}
}

func (c *MailingController) recordSent(template string, sent int, err error) {
	if c.metrics == nil {
		return
	}
	if sent > 0 {
		c.metrics.MailingsSentTotal.WithLabelValues(template).Add(float64(sent))
	}
	if err != nil {
		c.metrics.MailingDeliveryFailures.Inc()
	}
}

// SchoolInvite mails every approved applicant
// @Summary Send school invitations
// @Description Mails every approved applicant; partial failures still deliver the rest
// @Tags mailings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SchoolInviteRequest true "Invitation content"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Invitations sent"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a curator"
// @Failure 502 {object} dto.ErrorResponse "Some invitations failed to deliver"
// @Router /mailings/school-invite [post]
func (c *MailingController) SchoolInvite(ctx *gin.Context) {
	var req dto.SchoolInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mailing data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sent, err := c.mailingService.SchoolInvite(ctx, middleware.CurrentUser(ctx), req)
	c.recordSent(templateSchoolInvite, sent, err)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"sent": sent},
		Timestamp: time.Now(),
	})
}

// EventInfo mails every candidate an event announcement
// @Summary Send event information
// @Tags mailings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventMailingRequest true "Event mailing data"
// @Success 200 {object} dto.APIResponse "Announcements sent"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 502 {object} dto.ErrorResponse "Some announcements failed to deliver"
// @Router /mailings/event-info [post]
func (c *MailingController) EventInfo(ctx *gin.Context) {
	c.eventMailing(ctx, templateEventInfo, c.mailingService.EventInfo)
}

// EventReminder mails every candidate an event reminder
// @Summary Send event reminders
// @Tags mailings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventMailingRequest true "Event mailing data"
// @Success 200 {object} dto.APIResponse "Reminders sent"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 502 {object} dto.ErrorResponse "Some reminders failed to deliver"
// @Router /mailings/event-reminder [post]
func (c *MailingController) EventReminder(ctx *gin.Context) {
	c.eventMailing(ctx, templateEventReminder, c.mailingService.EventReminder)
}

func (c *MailingController) eventMailing(ctx *gin.Context, template string, send func(context.Context, *models.User, dto.EventMailingRequest) (int, error)) {
	var req dto.EventMailingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mailing data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sent, err := send(ctx, middleware.CurrentUser(ctx), req)
	c.recordSent(template, sent, err)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"sent": sent},
		Timestamp: time.Now(),
	})
}

// IssueCredentials creates an account and mails the generated password
// @Summary Issue account credentials
// @Description Creates an account with a generated password and emails it to the owner
// @Tags mailings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CredentialsRequest true "Account data"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Account created"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 502 {object} dto.ErrorResponse "Account created but the email failed"
// @Router /mailings/credentials [post]
func (c *MailingController) IssueCredentials(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid credentials data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.mailingService.IssueCredentials(ctx, middleware.CurrentUser(ctx), req)
	if err != nil {
		// The account may exist even when delivery failed.
		c.recordSent(templateCredentials, 0, err)
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.recordSent(templateCredentials, 1, nil)

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromUser(user),
		Timestamp: time.Now(),
	})
}

// History lists the mailings delivered to the caller
// @Summary Own mailing history
// @Tags mailings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MailingResponse} "Mailings"
// @Router /mailings/my [get]
func (c *MailingController) History(ctx *gin.Context) {
	mailings, err := c.mailingService.History(ctx, middleware.CurrentUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromMailings(mailings),
		Timestamp: time.Now(),
	})
}
