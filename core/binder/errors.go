package binder

import "net/http"

// Error is a binding failure that carries the HTTP status it maps to.
type Error struct {
	status int
	msg    string
}

func (e *Error) Error() string   { return e.msg }
func (e *Error) StatusCode() int { return e.status }

var (
	// ErrUnsupportedMediaType is returned when Content-Type is set to anything
	// other than application/json.
	ErrUnsupportedMediaType = &Error{status: http.StatusUnsupportedMediaType, msg: "Unsupported media type"}

	// ErrFailedToParseJSON is returned for empty, malformed or mistyped bodies.
	ErrFailedToParseJSON = &Error{status: http.StatusBadRequest, msg: "Invalid JSON body"}

	// ErrBodyTooLarge is returned when the body exceeds the size limit.
	ErrBodyTooLarge = &Error{status: http.StatusRequestEntityTooLarge, msg: "Request body too large"}
)
