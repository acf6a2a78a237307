// Package apperr defines the domain error taxonomy shared by all services.
// Handlers map an Error's Kind to an HTTP status at the boundary; wrapped
// causes are logged but never serialized to clients.
package apperr

import (
	"errors"
	"net/http"
)

type Kind uint8

const (
	KindValidation Kind = iota + 1 // missing or malformed input
	KindAuth                       // missing/invalid credential or bad login
	KindForbidden                  // authenticated but not the resource owner
	KindNotFound                   // referenced entity absent
	KindConflict                   // would violate a uniqueness/state invariant
	KindInternal                   // persistence or unexpected failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func Forbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps an unexpected failure. The cause stays server-side; clients
// only ever see the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for
// anything outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to its boundary status code. Conflicts map to
// 400 in this design.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to serialize to a client. Internal
// causes are redacted.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}
