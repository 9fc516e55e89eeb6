package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrVacancyNotFound     = errors.New("vacancy not found")
	ErrOfferNotFound       = errors.New("mentor offer not found")
	ErrApplicationNotFound = errors.New("intern application not found")
	ErrFeedbackNotFound    = errors.New("feedback not found")
	ErrEventNotFound       = errors.New("event not found")

	// Conflict errors
	ErrConflict           = errors.New("conflict")
	ErrMentorBusy         = errors.New("mentor already holds an active vacancy")
	ErrOfferAlreadyExists = errors.New("vacancy already has an outstanding offer")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidCountry   = errors.New("invalid country name")
	ErrBadRequest       = errors.New("bad request")

	// Delivery errors: the triggering state change persists even when
	// the outbound email fails.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a resource-not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
