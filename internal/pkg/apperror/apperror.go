package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NotFound builds a 404 error with a formatted message.
func NotFound(format string, args ...any) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// InvalidArgument builds a 400 error with a formatted message.
func InvalidArgument(format string, args ...any) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// Conflict builds a 409 error with a formatted message.
func Conflict(format string, args ...any) *AppError {
	return New(http.StatusConflict, fmt.Sprintf(format, args...))
}
