// Package apperr defines the error taxonomy shared by all services. Every
// error a handler is expected to translate into a client-facing response
// carries one of the kinds below; anything else is an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for clients. Kinds are part of the API contract.
type Kind string

const (
	KindValidation    Kind = "validation"     // malformed or missing input
	KindConflict      Kind = "conflict"       // uniqueness violation
	KindAuth          Kind = "auth"           // bad credentials or invalid/expired token
	KindInviteInvalid Kind = "invite_invalid" // unknown or already used invite code
	KindForbidden     Kind = "forbidden"      // authenticated but not authorized
	KindNotFound      Kind = "not_found"      // resource absent
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func Auth(format string, args ...any) *Error {
	return New(KindAuth, format, args...)
}

func InviteInvalid(format string, args ...any) *Error {
	return New(KindInviteInvalid, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// KindOf returns the kind of err, or "" if err is not a classified error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
