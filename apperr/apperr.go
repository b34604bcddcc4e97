package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the handler layer can pick a status code
// without string-matching messages.
type Kind int

const (
	Validation Kind = iota
	NotFound
	Forbidden
	Conflict
	IllegalTransition
	Storage
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Storage when err carries no kind.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Storage
}

// Status maps an error to the HTTP status code handlers respond with.
func Status(err error) int {
	switch KindOf(err) {
	case Validation, IllegalTransition:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Storage errors get a
// generic message so internals never leak to the response body.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != Storage {
		return ae.Message
	}
	return "Internal server error"
}
