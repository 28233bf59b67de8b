package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError and decides the HTTP status it maps to.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindTooManyRequests
	KindUnavailable
	KindPayloadTooLarge
)

// AppError represents an application error
type AppError struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
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

// Status returns the HTTP status code for the error kind.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a 400 error carrying human-readable details.
func Validation(details ...string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "Validation error",
		Details: details,
	}
}

// BadRequest returns a validation error with a custom top-level message.
func BadRequest(message string, err error) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Err:     err,
	}
}

// NotFound returns "<resource> not found". Callers use it for both missing
// rows and rows owned by someone else.
func NotFound(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Kind:    KindTooManyRequests,
		Message: message,
	}
}

func Unavailable(message string, err error) *AppError {
	return &AppError{
		Kind:    KindUnavailable,
		Message: message,
		Err:     err,
	}
}

func PayloadTooLarge(message string) *AppError {
	return &AppError{
		Kind:    KindPayloadTooLarge,
		Message: message,
	}
}

// Internal wraps an unexpected failure. The message is what clients see.
func Internal(message string, err error) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return &AppError{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
