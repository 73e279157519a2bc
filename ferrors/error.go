package ferrors

import "fmt"

// Error wraps a Kind with a human-readable message and an optional
// underlying cause, the way a boundary layer (CLI/FFI/JNI, out of scope for
// this module) expects to enumerate over a small set of kinds rather than
// inspect arbitrary error strings.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an *Error of the given kind around a lower-level cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ferrors.Io) (and friends) work without exposing a
// sentinel value per kind: compare against a bare Kind on the right-hand
// side of errors.Is.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// Error satisfies the error interface for a bare Kind so it can be used
// directly as the target of errors.Is(err, ferrors.AeadFailure).
func (k Kind) Error() string {
	return k.String()
}
