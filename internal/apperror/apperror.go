// Package apperror defines the typed errors shared by the service and handler layers.
//
// The service layer returns these; the handler layer maps them to HTTP statuses.
// Anything that is not an *AppError is treated as an unexpected failure (500).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrInvalidID  = errors.New("invalid id")
)

type AppError struct {
	Err     error  // sentinel kind, matched with errors.Is
	Message string // human-readable message sent to the client
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing (or out-of-scope) entity, e.g. NotFound("Blog") → "Blog not found!".
func NotFound(entity string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found!", entity),
	}
}

// NotFoundf is NotFound with a caller-supplied message.
// Some routes answer 404 for missing input as well as missing entities.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func InvalidID(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidID,
		Message: message,
		Field:   field,
	}
}
