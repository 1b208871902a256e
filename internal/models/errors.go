package models

import (
	"fmt"
	"net/http"
)

// AppError is the unified error shape mapped to JSON at the request
// boundary. Status carries the HTTP code the handler should answer with.
type AppError struct {
	Code    string
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

const (
	ErrCodeAuthRequired = "AUTH_REQUIRED"
	ErrCodeValidation   = "VALIDATION"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeAuthProvider = "AUTH_PROVIDER"
	ErrCodeInternal     = "INTERNAL"
)

// NewAuthRequiredError signals a request with no resolvable session user.
func NewAuthRequiredError() *AppError {
	return &AppError{
		Code:    ErrCodeAuthRequired,
		Message: "Authentication required",
		Status:  http.StatusUnauthorized,
	}
}

// NewValidationError signals missing or malformed request fields.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError signals an unknown article external id.
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewAuthProviderError signals a failed exchange with the identity
// provider. Status is 400 for a bad callback, 500 for missing
// configuration.
func NewAuthProviderError(message string, status int) *AppError {
	return &AppError{
		Code:    ErrCodeAuthProvider,
		Message: message,
		Status:  status,
	}
}

// NewInternalError wraps an unexpected failure as a 500.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: err.Error(),
		Status:  http.StatusInternalServerError,
	}
}
