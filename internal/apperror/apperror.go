package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrAnalysis     = errors.New("analysis failed")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(field, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// Unauthorized returns an AppError for failed credential checks.
// HTTP handlers map this to 401. The message stays vague — it must not
// reveal whether the username or the password was the wrong half.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Analysis wraps a failure from the external AI-analysis capability
// (transport error or an unparseable response). The operation name tells
// the log reader which saga step failed; the cause stays on the chain
// for errors.Is.
func Analysis(operation string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrAnalysis, err),
		Message: fmt.Sprintf("Failed to %s: %v", operation, err),
	}
}
