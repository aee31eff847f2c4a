// Package errs provides the kinded error type shared by the gallery backends.
//
// The object-store gateway and both metadata drivers translate their native
// errors into *errs.Error, so the service and HTTP layers can branch on a
// Kind without importing minio, pgx or mysql types.
//
//	if errs.IsInvalidInput(err) {
//	    return echo.NewHTTPError(http.StatusBadRequest, err.Error())
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error independently of the backend that produced it.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // no object, no metadata row, no bucket
	ErrKindConnectionFailed         // backend unreachable
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // SQL or storage operation error
	ErrKindInvalidInput             // bad path or request from the caller
	ErrKindPermissionDenied         // access denied / bad credentials
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// Error carries a Kind, a human message and the backend cause.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error without a cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error around cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Invalid is shorthand for New(ErrKindInvalidInput, fmt.Sprintf(...)).
func Invalid(format string, args ...any) *Error {
	return New(ErrKindInvalidInput, fmt.Sprintf(format, args...))
}

func IsNotFound(err error) bool         { return KindOf(err) == ErrKindNotFound }
func IsTimeout(err error) bool          { return KindOf(err) == ErrKindTimeout }
func IsConnectionFailed(err error) bool { return KindOf(err) == ErrKindConnectionFailed }
func IsQueryFailed(err error) bool      { return KindOf(err) == ErrKindQueryFailed }
func IsInvalidInput(err error) bool     { return KindOf(err) == ErrKindInvalidInput }
func IsPermissionDenied(err error) bool { return KindOf(err) == ErrKindPermissionDenied }

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
