// Package apperr is the error taxonomy surfaced by the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

// GenericMessage is returned to clients for errors they cannot correct.
const GenericMessage = "Something went wrong, please try again later"

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindProvider
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error carries a client-facing message and the underlying cause, which is
// only logged.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus maps the kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to return to clients.
func (e *Error) PublicMessage() string {
	switch e.Kind {
	case KindNotFound, KindValidation:
		return e.Message
	default:
		return GenericMessage
	}
}

func NotFound(msg string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Cause: cause}
}

func Validation(msg string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Cause: cause}
}

func Provider(msg string, cause error) *Error {
	return &Error{Kind: KindProvider, Message: msg, Cause: cause}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Cause: cause}
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal error", err)
}

// Body is the JSON error envelope.
type Body struct {
	Error string `json:"error"`
}
