package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode is the HTTP status the error maps to.
func (e *AppError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// Common error codes
const (
	ErrBadRequest ErrorCode = iota + 1001
	ErrInternal
	ErrUnavailable
	ErrTooManyRequests
	ErrTooLarge
)

// Error constructors
func BadRequest(message string, err error) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unavailable(message string, err error) *AppError {
	return &AppError{
		Status:  http.StatusServiceUnavailable,
		Code:    ErrUnavailable,
		Message: message,
		Err:     err,
	}
}

func TooLarge(message string, err error) *AppError {
	return &AppError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    ErrTooLarge,
		Message: message,
		Err:     err,
	}
}

func TooManyRequests() *AppError {
	return &AppError{
		Status:  http.StatusTooManyRequests,
		Code:    ErrTooManyRequests,
		Message: "rate limit exceeded",
	}
}

// As returns the AppError in err's chain, wrapping anything else as Internal.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
