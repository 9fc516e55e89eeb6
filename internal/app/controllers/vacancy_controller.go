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

// VacancyController handles the vacancy lifecycle endpoints
type VacancyController struct {
	vacancyService *services.VacancyService
	metrics        *metrics.Registry
}

// NewVacancyController creates a new VacancyController
func NewVacancyController(vacancyService *services.VacancyService, registry *metrics.Registry) *VacancyController {
	return &VacancyController{
		vacancyService: vacancyService,
		metrics:        registry,
	}
}

// Create posts a new vacancy
// @Summary Create a vacancy
// @Description Creates a hidden vacancy owned by the calling HR manager
// @Tags vacancies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VacancyCreateRequest true "Vacancy data"
// @Success 201 {object} dto.APIResponse{data=dto.VacancyResponse} "Vacancy created"
// @Failure 400 {object} dto.ErrorResponse "Invalid vacancy data"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Router /vacancies [post]
func (c *VacancyController) Create(ctx *gin.Context) {
	var req dto.VacancyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vacancy data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	vacancy, err := c.vacancyService.CreateVacancy(ctx, middleware.CurrentUser(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.metrics != nil {
		c.metrics.VacanciesCreatedTotal.Inc()
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromVacancy(vacancy),
		Timestamp: time.Now(),
	})
}

// Get returns one vacancy
// @Summary Get a vacancy
// @Description Returns the vacancy if the caller's role may see its status
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vacancy ID"
// @Success 200 {object} dto.APIResponse{data=dto.VacancyResponse} "Vacancy"
// @Failure 404 {object} dto.ErrorResponse "Vacancy not found"
// @Router /vacancies/{id} [get]
func (c *VacancyController) Get(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	vacancy, err := c.vacancyService.GetVacancy(ctx, middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVacancy(vacancy),
		Timestamp: time.Now(),
	})
}

// List returns the vacancies visible to the caller
// @Summary List vacancies
// @Description Returns a page of vacancies filtered by tag, organisation and city
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param tag query []string false "Tag filter"
// @Param organisation query []string false "Organisation filter"
// @Param city query string false "City filter"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Vacancy page"
// @Router /vacancies [get]
func (c *VacancyController) List(ctx *gin.Context) {
	var query dto.VacancyListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	filters := models.VacancyFilters{
		Tags:          query.Tags,
		Organisations: query.Organisations,
		City:          query.City,
	}

	vacancies, pagination, err := c.vacancyService.ListVacancies(ctx, middleware.CurrentUser(ctx), filters, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PagedResponse{
			Items:      dto.FromVacancies(vacancies),
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// Filters returns the popular filter values for the listing UI
// @Summary Available vacancy filters
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.VacancyFiltersAvailable} "Filter values"
// @Router /vacancies/filters [get]
func (c *VacancyController) Filters(ctx *gin.Context) {
	filters, err := c.vacancyService.AvailableFilters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      filters,
		Timestamp: time.Now(),
	})
}

// ProposeMentor offers the vacancy to a mentor
// @Summary Propose a mentor
// @Description Moves a hidden vacancy to pending and notifies the mentor by email
// @Tags vacancies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vacancy ID"
// @Param request body dto.ProposeMentorRequest true "Mentor to propose"
// @Success 200 {object} dto.APIResponse{data=dto.OfferResponse} "Offer created"
// @Failure 403 {object} dto.ErrorResponse "Not the owning HR"
// @Failure 404 {object} dto.ErrorResponse "Proposed user missing or not a mentor"
// @Failure 409 {object} dto.ErrorResponse "Vacancy is not hidden"
// @Failure 502 {object} dto.ErrorResponse "Offer stored but the email failed"
// @Router /vacancies/{id}/propose [post]
func (c *VacancyController) ProposeMentor(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ProposeMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid proposal data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offer, err := c.vacancyService.ProposeMentor(ctx, middleware.CurrentUser(ctx), id, req.MentorID)
	if err != nil {
		// The offer may have been committed before delivery failed.
		if c.metrics != nil && offer != nil {
			c.metrics.MailingDeliveryFailures.Inc()
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromOffer(offer),
		Timestamp: time.Now(),
	})
}

// AcceptOffer lets the proposed mentor take the vacancy
// @Summary Accept a mentorship offer
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vacancy ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Offer accepted"
// @Failure 404 {object} dto.ErrorResponse "No offer for this mentor"
// @Failure 409 {object} dto.ErrorResponse "Mentor already bound to a vacancy"
// @Router /vacancies/{id}/accept [post]
func (c *VacancyController) AcceptOffer(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.vacancyService.AcceptOffer(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.metrics != nil {
		c.metrics.OffersAcceptedTotal.Inc()
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "offer accepted"},
		Timestamp: time.Now(),
	})
}

// DeclineOffer lets the proposed mentor turn the vacancy down
// @Summary Decline a mentorship offer
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vacancy ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Offer declined"
// @Failure 404 {object} dto.ErrorResponse "No offer for this mentor"
// @Router /vacancies/{id}/decline [post]
func (c *VacancyController) DeclineOffer(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.vacancyService.DeclineOffer(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "offer declined"},
		Timestamp: time.Now(),
	})
}

// Publish makes an accepted vacancy visible to candidates
// @Summary Publish a vacancy
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vacancy ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Vacancy published"
// @Failure 403 {object} dto.ErrorResponse "Not the accepting mentor"
// @Failure 409 {object} dto.ErrorResponse "Vacancy is not accepted"
// @Router /vacancies/{id}/publish [post]
func (c *VacancyController) Publish(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.vacancyService.PublishVacancy(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "vacancy published"},
		Timestamp: time.Now(),
	})
}

// Delete closes a vacancy
// @Summary Close a vacancy
// @Description Removes outstanding offers and keeps the vacancy as a closed record
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vacancy ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Vacancy closed"
// @Failure 403 {object} dto.ErrorResponse "Not the owning HR"
// @Failure 409 {object} dto.ErrorResponse "Vacancy is already closed"
// @Router /vacancies/{id} [delete]
func (c *VacancyController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.vacancyService.DeleteVacancy(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "vacancy closed"},
		Timestamp: time.Now(),
	})
}

// MyOffers lists the offers addressed to the calling mentor
// @Summary List own mentorship offers
// @Tags vacancies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferResponse} "Offers"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a mentor"
// @Router /vacancies/offers/my [get]
func (c *VacancyController) MyOffers(ctx *gin.Context) {
	offers, err := c.vacancyService.MyOffers(ctx, middleware.CurrentUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, dto.FromOffer(o))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}
