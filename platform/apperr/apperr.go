// Package apperr defines the typed errors services return. Each error
// carries a Kind so the HTTP layer can map it to a status code without
// string matching.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and degradation decisions.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	// KindValidation marks rejected input, for example out-of-range
	// coordinates. Validation errors surface to the caller instead of
	// degrading.
	KindValidation
	KindUnauthorized
	KindForbidden
	KindBadRequest
	// KindUnavailable marks a collaborator outage. Orchestrators treat it
	// as an empty result rather than a failure.
	KindUnavailable
	KindInternal
)

// Error is the concrete error type services produce.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // failing operation, e.g. "geofence.Resolve"
	Err     error       // wrapped cause
	Details interface{} // extra payload for the error response
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a response status. Unknown kinds fall
// back to 400 so a missing mapping never leaks a 500.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// WithOp tags the error with the operation that produced it.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails attaches a payload that the error response will carry.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Shorthand constructors for the kinds services reach for most.

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Unavailable(message string) *Error  { return New(KindUnavailable, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }

// GetKind reports the kind of err, or KindUnknown for foreign errors.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is a typed error of the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
