package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every controller
// funnels its errors through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrVacancyNotFound),
		errors.Is(err, apperrors.ErrOfferNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrFeedbackNotFound),
		errors.Is(err, apperrors.ErrEventNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrMentorBusy),
		errors.Is(err, apperrors.ErrOfferAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, err)

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidCountry),
		errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)

	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	case errors.Is(err, apperrors.ErrMailDelivery):
		// The triggering state change has already been committed.
		respondError(c, http.StatusBadGateway, dto.ErrorCodeMailDelivery, err)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	errorDetail := dto.NewErrorDetail(code, err.Error())

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		errorDetail = errorDetail.WithDetails(custom.Details)
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}
