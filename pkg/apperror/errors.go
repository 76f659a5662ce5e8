package apperror

import (
	"errors"
	"net/http"
)

// Reason codes surfaced to clients so they can react programmatically
// (prune a cart line, refetch an order, retry payment).
const (
	ReasonItemUnavailable    = "ITEM_UNAVAILABLE"
	ReasonSizeUnavailable    = "SIZE_UNAVAILABLE"
	ReasonAddOnUnavailable   = "ADDON_UNAVAILABLE"
	ReasonCartEmpty          = "CART_EMPTY"
	ReasonCartInvalid        = "CART_INVALID"
	ReasonAddressNotFound    = "ADDRESS_NOT_FOUND"
	ReasonRestaurantClosed   = "RESTAURANT_CLOSED"
	ReasonOfferInvalid       = "OFFER_INVALID"
	ReasonOfferNotApplicable = "OFFER_NOT_APPLICABLE"
	ReasonInvalidTransition  = "INVALID_TRANSITION"
	ReasonStaleStatus        = "STALE_STATUS"
)

// AppError represents an application error with HTTP status code and an
// optional machine-readable reason code
type AppError struct {
	Code    int          `json:"code"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Lines   []LineError  `json:"lines,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// LineError represents a rejected cart line, identified by its position in
// the submitted cart
type LineError struct {
	Index   int    `json:"index"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewReasonError creates an error carrying a machine-readable reason code
func NewReasonError(code int, reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewCartInvalidError creates an error listing every rejected cart line
func NewCartInvalidError(lines []LineError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonCartInvalid,
		Message: "Some cart lines are no longer available",
		Lines:   lines,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasReason reports whether err is an AppError carrying the given reason code
func HasReason(err error, reason string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason == reason
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
