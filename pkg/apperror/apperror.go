package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
	ErrInternal   = errors.New("internal server error")
)

type AppError struct {
	BaseError     error
	Message       string
	Details       string
	MissingFields []string
	Err           error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Kind is the taxonomy tag carried to API clients.
func (e *AppError) Kind() string {
	switch {
	case errors.Is(e.BaseError, ErrValidation):
		return "validation"
	case errors.Is(e.BaseError, ErrStorage):
		return "storage"
	case errors.Is(e.BaseError, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

// NewValidation reports required payload fields that were missing or null.
func NewValidation(missing []string) *AppError {
	e := NewAppError(ErrValidation, "Missing required fields", fmt.Sprintf("required fields missing or null: %v", missing), nil)
	e.MissingFields = missing
	return e
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrValidation, "Invalid input provided", details, err)
}

func NewStorage(details string, err error) *AppError {
	return NewAppError(ErrStorage, "A storage error occurred", details, err)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	detail := gin.H{
		"kind":   e.Kind(),
		"detail": e.Message,
	}
	if len(e.MissingFields) > 0 {
		detail["missing"] = e.MissingFields
	}
	return gin.H{
		"success": false,
		"error":   detail,
	}
}
