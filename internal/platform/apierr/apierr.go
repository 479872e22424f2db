package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and machine code a handler should respond with.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthenticated(msg string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", errors.New(msg))
}

func Forbidden(code, msg string) *Error {
	return New(http.StatusForbidden, code, errors.New(msg))
}

func NotFound(code, msg string) *Error {
	return New(http.StatusNotFound, code, errors.New(msg))
}

func Invalid(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func Conflict(code, msg string) *Error {
	return New(http.StatusConflict, code, errors.New(msg))
}

// Storage hides the cause behind a generic message; the cause stays reachable
// through Cause for server-side logging.
func Storage(code string, cause error) *Error {
	return New(http.StatusInternalServerError, code, &storageErr{cause: cause})
}

func Upstream(code string, cause error) *Error {
	return New(http.StatusBadGateway, code, cause)
}

func RateLimited(msg string) *Error {
	return New(http.StatusTooManyRequests, "rate_limited", errors.New(msg))
}

type storageErr struct {
	cause error
}

func (s *storageErr) Error() string { return "internal storage error" }
func (s *storageErr) Unwrap() error { return s.cause }

// Cause returns the underlying error for logging, skipping the generic storage wrapper.
func Cause(err error) error {
	var se *storageErr
	if errors.As(err, &se) && se.cause != nil {
		return se.cause
	}
	return err
}

// As is a shorthand for errors.As against *Error.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
