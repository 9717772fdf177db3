// Package fault defines the error taxonomy shared by the domain and
// application layers. Every rejection carries a Kind so the transport
// layer can map it to a status code without string matching.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInvalidArgument marks a caller-supplied value that fails a
	// precondition. Never retried.
	KindInvalidArgument Kind = iota + 1
	// KindConflict marks a valid request blocked by current state.
	KindConflict
	// KindNotFound marks a missing listing, booking, review or user.
	KindNotFound
	// KindInternal marks persistence or dependent-record failures.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a typed error with an explanatory message. It wraps an
// optional cause so errors.Is/As keep working through it.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func InvalidArgument(message string) error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(message string, cause error) error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf classifies err, returning KindInternal for errors that carry
// no explicit kind.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the explanatory message, or the raw error text for
// untyped errors.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
