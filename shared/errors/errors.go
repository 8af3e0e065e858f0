package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Storage level signals. Never returned to service callers as is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError is returned for malformed input (wrong participant count, oversized text).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}

// ForbiddenError means the user is authenticated but may not act on the resource.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("Forbidden: %s", e.Message)
}

// NotFoundError is the service level translation of ErrNotFound.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Not found: %s", e.Message)
}

// Is reports whether err (or anything it wraps) is of type T.
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// StatusCode maps typed errors to http status codes. Unknown errors are 500.
func StatusCode(err error) int {
	var withCode *ErrorWithStatusCode
	if errors.As(err, &withCode) {
		return withCode.StatusCode
	}
	switch {
	case Is[*ValidationError](err):
		return http.StatusBadRequest
	case Is[*ForbiddenError](err):
		return http.StatusForbidden
	case Is[*NotFoundError](err), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
