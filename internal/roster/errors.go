package roster

import (
	"errors"
	"fmt"
)

// ErrKind classifies why an operation was rejected.
type ErrKind int

const (
	// ErrKindSchema means an import file satisfied none of the
	// recognized header schemas. The store is left untouched.
	ErrKindSchema ErrKind = iota
	// ErrKindValidation means a required field was missing or referenced
	// an unknown program. No mutation occurred.
	ErrKindValidation
	// ErrKindCapacity means the action would push a program past its
	// seat limit. No mutation occurred.
	ErrKindCapacity
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindSchema:
		return "schema"
	case ErrKindValidation:
		return "validation"
	case ErrKindCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

// Error is the error type returned by all store operations.
// Every Error is locally recoverable: the operator corrects input
// and retries.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates an Error with a formatted message.
func NewError(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) a *Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
