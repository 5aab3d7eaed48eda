// Package apperr defines the error taxonomy shared by stores and handlers.
// Stores return *Error values for the conditions a client can act on;
// anything else is an internal failure.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for status mapping and logging.
type Code string

const (
	// InvalidInput marks malformed, missing or out-of-range request fields.
	InvalidInput Code = "INVALID_INPUT"
	// NotFound marks an id-addressed entity that does not exist.
	NotFound Code = "NOT_FOUND"
	// Conflict marks a uniqueness violation on write.
	Conflict Code = "CONFLICT"
	// ForeignKeyViolation marks a reference to a category that does not exist.
	ForeignKeyViolation Code = "FOREIGN_KEY_VIOLATION"
	// DatabaseUnavailable marks a store that could not be reached.
	DatabaseUnavailable Code = "DATABASE_UNAVAILABLE"
	// Internal marks everything else.
	Internal Code = "INTERNAL"
)

// Error carries a Code, a short client-safe Message and an optional Cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Code, so callers can test
// errors.Is(err, &apperr.Error{Code: apperr.NotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error that keeps cause for logging.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Invalid is shorthand for New(InvalidInput, message).
func Invalid(message string) *Error {
	return New(InvalidInput, message)
}

// CodeOf returns the Code of the first *Error in err's chain, or Internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// HTTPStatus maps a Code to its response status. Conflict and
// ForeignKeyViolation are client errors answered with 400. A store that
// cannot be reached mid-request is an internal failure like any other.
func HTTPStatus(code Code) int {
	switch code {
	case InvalidInput, Conflict, ForeignKeyViolation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
