package response

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError renders as {"code": "...", "error": "..."}. The cause is kept
// for logging and errors.Is/As and never serialized.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	cause   error
}

// StatusError builds an HTTPError for status. The code is the snake_case
// status text ("too_many_requests") and the message the status text itself.
func StatusError(status int) HTTPError {
	text := http.StatusText(status)
	if text == "" || status < http.StatusBadRequest {
		status = http.StatusInternalServerError
		text = http.StatusText(status)
	}
	return HTTPError{
		Status:  status,
		Code:    strings.ReplaceAll(strings.ToLower(text), " ", "_"),
		Message: text,
	}
}

func (e HTTPError) Error() string   { return e.Message }
func (e HTTPError) StatusCode() int { return e.Status }
func (e HTTPError) Unwrap() error   { return e.cause }

// WithMessage returns a copy with a custom client-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

// WithError returns a copy carrying err as its cause.
func (e HTTPError) WithError(err error) HTTPError {
	e.cause = err
	return e
}

var (
	ErrBadRequest            = StatusError(http.StatusBadRequest)
	ErrUnauthorized          = StatusError(http.StatusUnauthorized)
	ErrNotFound              = StatusError(http.StatusNotFound)
	ErrMethodNotAllowed      = StatusError(http.StatusMethodNotAllowed)
	ErrConflict              = StatusError(http.StatusConflict)
	ErrRequestEntityTooLarge = StatusError(http.StatusRequestEntityTooLarge)
	ErrUnsupportedMediaType  = StatusError(http.StatusUnsupportedMediaType)
	ErrTooManyRequests       = StatusError(http.StatusTooManyRequests)
	ErrInternalServerError   = StatusError(http.StatusInternalServerError)
	ErrServiceUnavailable    = StatusError(http.StatusServiceUnavailable)
)

// AsHTTPError maps err to the HTTPError sent to the client. Errors exposing
// StatusCode() keep their status, and for 4xx also their message. Anything
// else is a generic 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var sc interface{ StatusCode() int }
	if !errors.As(err, &sc) {
		return ErrInternalServerError.WithError(err)
	}

	e := StatusError(sc.StatusCode())
	if e.Status < http.StatusInternalServerError {
		e.Message = err.Error()
	}
	return e.WithError(err)
}
