package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application. Each Error wraps exactly
// one of these according to its Kind, so callers can use errors.Is.
var (
	// ErrValidation is returned when input is malformed or missing.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness or state invariant would be violated.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when credentials are missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal marks unexpected failures whose details must not reach clients.
	ErrInternal = errors.New("internal error")

	// ErrAlreadyConfirmed is returned when confirming a friendship that is not pending.
	ErrAlreadyConfirmed = errors.New("friendship already confirmed")
)

// ErrorKind classifies an Error for status mapping.
type ErrorKind int

// Error kinds.
const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindAuth
	KindInternal
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	case KindAuth:
		return "AuthError"
	case KindInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindAuth:
		return ErrUnauthorized
	default:
		return ErrInternal
	}
}

// Error is a classified error carrying a client-safe message.
// Err optionally holds the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind's sentinel and the cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *Error {
	return NewError(KindValidation, message)
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string) *Error {
	return NewError(KindNotFound, message)
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *Error {
	return NewError(KindConflict, message)
}

// Wrap attaches a cause to the error and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
