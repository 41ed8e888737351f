// Package apperr defines the error kinds surfaced to API clients.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable category of an Error. Its value is written to
// the GraphQL error's extensions.code.
type Kind string

const (
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindPermissionDenied   Kind = "PERMISSION_DENIED"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindAlreadyExists      Kind = "ALREADY_EXISTS"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
)

// Error is an error with a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrUnauthenticated is returned for a missing, malformed, badly signed
	// or expired token. Callers never learn which check failed.
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "invalid token"}

	// ErrInvalidCredentials is returned by login for an unknown email and for
	// a wrong password alike.
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
)

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func PermissionDenied(msg string) *Error { return New(KindPermissionDenied, msg) }

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

func InvalidInput(msg string) *Error { return New(KindInvalidInput, msg) }

func AlreadyExists(msg string) *Error { return New(KindAlreadyExists, msg) }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
