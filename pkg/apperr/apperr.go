// Package apperr holds the error kinds that cross the http boundary. Services return these and the
// controllers translate them into problem documents.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is a bad or missing request parameter, detected before any backend call.
	KindValidation
	// KindNotFound is a lookup that matched no osm object.
	KindNotFound
	// KindBackend is a failed or malformed backend query or lookup.
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBackend:
		return "backend"
	}
	return "unknown"
}

type Error struct {
	Kind       Kind
	Op         string // operation that failed, optional
	Param      string // request parameter, validation errors only
	Constraint string // rule the parameter broke, validation errors only
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindBackend:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func Validation(param, constraint, message string) *Error {
	return &Error{
		Kind:       KindValidation,
		Param:      param,
		Constraint: constraint,
		Message:    message,
	}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Backend(op string, err error) *Error {
	return &Error{Kind: KindBackend, Op: op, Err: err}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}
