package handler

import (
	"context"
	"net/http"
)

// Context is what every handler and middleware receives. It is a
// context.Context for the request lifetime; SetValue makes a value visible
// to everything downstream through the usual Value lookup.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	SetValue(key, val any)
}

// Response writes status, headers and body. A returned error goes to the
// router's ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

type HandlerFunc[C Context] func(ctx C) Response

type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a handler. It may short-circuit by returning its own
// Response, or decorate the Response returned by next.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
