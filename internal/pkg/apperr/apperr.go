// Package apperr defines the error kinds every workflow reports.
//
// Module errors wrap one of the kinds so handlers and callers can branch on
// errors.Is without knowing the concrete module error:
//
//	ErrAlreadyMember = fmt.Errorf("%w: user is already a member of this organization", apperr.ErrConflict)
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("not authorized")
	ErrConflict      = errors.New("conflict")
	ErrRemote        = errors.New("remote call failed")
	ErrNotFound      = errors.New("not found")
)

// Kind names the taxonomy bucket of err, or "INTERNAL" when err carries none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrAuthorization):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRemote):
		return "REMOTE"
	default:
		return "INTERNAL"
	}
}

// Validation builds a validation error with a caller-facing message.
func Validation(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an authorization error with a caller-facing message.
func Unauthorized(format string, args ...any) error {
	return &kindError{kind: ErrAuthorization, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error with a caller-facing message.
func NotFound(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict error with a caller-facing message.
func Conflict(format string, args ...any) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// Remote wraps a failed gateway call. The message is what callers see;
// the cause stays reachable through errors.Unwrap.
func Remote(cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: ErrRemote, msg: msg, cause: cause}
}

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}
