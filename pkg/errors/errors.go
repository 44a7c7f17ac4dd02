package errors

import (
	stderrors "errors"
	"fmt"
)

// Standard error codes
const (
	ErrInternal     = "INTERNAL"
	ErrNotFound     = "NOT_FOUND"
	ErrInvalidInput = "INVALID_INPUT"
	ErrInvalidState = "INVALID_STATE"
	ErrCancelled    = "CANCELLED"
	ErrIO           = "IO"
)

// AppError is a standardized error type for the application
type AppError struct {
	Code       string
	Message    string
	Op         string // Operation where the error occurred
	Err        error  // Underlying error
	Suggestion string // Actionable suggestion for the user
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (cause: %v)", e.Code, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Op, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code, op, message string) *AppError {
	return &AppError{
		Code:    code,
		Op:      op,
		Message: message,
	}
}

// Wrap wraps an existing error into an AppError
func Wrap(err error, code, op, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// WithSuggestion adds a suggestion to an existing AppError
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// IsCode checks if err, or any error it wraps, is an AppError with the given code
func IsCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
