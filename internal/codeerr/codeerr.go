// Package codeerr defines the closed set of error kinds surfaced by the
// save-file codec, the roam store, and the transfer controller.
package codeerr

import "github.com/pkg/errors"

// Kind identifies one of the error conditions the system can surface.
type Kind string

const (
	KindBadLength           Kind = "BadLength"
	KindBadRotation         Kind = "BadRotation"
	KindBadChecksum         Kind = "BadChecksum"
	KindMalformedCreature   Kind = "MalformedCreature"
	KindSlotOutOfRange      Kind = "SlotOutOfRange"
	KindSourceEmpty         Kind = "SourceEmpty"
	KindDestinationOccupied Kind = "DestinationOccupied"
	KindSaveWriteFailed     Kind = "SaveWriteFailed"
	KindStoreReadFailed     Kind = "StoreReadFailed"
	KindStoreWriteFailed    Kind = "StoreWriteFailed"
	KindSchemaTooNew        Kind = "SchemaTooNew"
)

// Error is a Kind paired with a human-readable message and, for Wrap, the
// underlying cause. Cause and Unwrap make the chain walkable by both
// github.com/pkg/errors (Cause) and the stdlib errors package (Is/As).
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

// Cause returns the wrapped error, for github.com/pkg/errors.Cause.
func (e *Error) Cause() error { return e.cause }

// Unwrap returns the wrapped error, for stdlib errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New constructs an Error of the given Kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

// Wrap attaches a Kind to an underlying error. The original error is kept
// as the cause, stack trace and all, via github.com/pkg/errors.Wrap, so
// errors.Cause/errors.Unwrap walk all the way back to it.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrap(err, msg)}
}

// Is reports whether err is a codeerr.Error of the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
