package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrNilResponse      = errors.New("handler returned a nil response")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrDuplicateRoute   = errors.New("duplicate route")
	ErrRoutesDefined    = errors.New("middleware must be defined before routes")

	// Both expose StatusCode, so error handlers map them without importing
	// this package.
	ErrNotFound         error = statusError{http.StatusNotFound, "not found"}
	ErrMethodNotAllowed error = statusError{http.StatusMethodNotAllowed, "method not allowed"}
)

type statusError struct {
	status int
	msg    string
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) StatusCode() int { return e.status }

// defaultErrorHandler answers in plain text. 4xx errors keep their message,
// everything else gets the generic status text.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	status := http.StatusInternalServerError
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	msg := http.StatusText(status)
	if status >= 400 && status < 500 {
		msg = err.Error()
	}
	http.Error(ctx.ResponseWriter(), msg, status)
}

// PanicError is what the error handler receives when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

// Unwrap exposes panics raised with an error value.
func (e *panicError) Unwrap() error {
	err, _ := e.value.(error)
	return err
}
