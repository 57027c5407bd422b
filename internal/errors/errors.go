// Package errors provides the error taxonomy of the resume API.
// Every failure that reaches a client is an AppError so responses stay
// structured; internal causes are logged and only surfaced when the
// sentinel is marked as exposing details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
	// ExposeDetails includes the internal error text in client responses.
	ExposeDetails bool `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Details returns the client-visible diagnostic detail, if any.
func (e *AppError) Details() string {
	if !e.ExposeDetails || e.Internal == nil {
		return ""
	}
	return e.Internal.Error()
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:          sentinel.Code,
		Message:       sentinel.Message,
		StatusCode:    sentinel.StatusCode,
		Internal:      internal,
		ExposeDetails: sentinel.ExposeDetails,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:          sentinel.Code,
		Message:       message,
		StatusCode:    sentinel.StatusCode,
		Internal:      sentinel.Internal,
		ExposeDetails: sentinel.ExposeDetails,
	}
}

// Validation errors.
var (
	ErrValidation = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
)

// Authentication errors. Missing, expired and invalid credentials are
// distinguished so clients can tell a stale token from a forged one.
var (
	ErrAuthMissing = &AppError{Code: "AUTH_MISSING", Message: "Unauthorized: No token provided", StatusCode: http.StatusUnauthorized}
	ErrAuthExpired = &AppError{Code: "AUTH_EXPIRED", Message: "Unauthorized: Token expired", StatusCode: http.StatusUnauthorized}
	ErrAuthInvalid = &AppError{Code: "AUTH_INVALID", Message: "Unauthorized: Invalid token", StatusCode: http.StatusUnauthorized}
)

// Rendering errors.
var (
	ErrRender          = &AppError{Code: "RENDER_FAILED", Message: "Failed to generate PDF", StatusCode: http.StatusInternalServerError, ExposeDetails: true}
	ErrTemplateMissing = &AppError{Code: "TEMPLATE_MISSING", Message: "Template file not found", StatusCode: http.StatusInternalServerError}
)

// Persistence errors.
var (
	ErrPersistence   = &AppError{Code: "PERSISTENCE_FAILED", Message: "Resume log could not be stored", StatusCode: http.StatusInternalServerError}
	ErrDuplicateCode = &AppError{Code: "DUPLICATE_RESUME_CODE", Message: "Resume code already exists", StatusCode: http.StatusConflict}
)

// General errors.
var (
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "API endpoint not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Metrics endpoint errors.
var (
	ErrMetricsNotConfigured = &AppError{Code: "METRICS_NOT_CONFIGURED", Message: "Metrics endpoint is not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAPIKey        = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)
