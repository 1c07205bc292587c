package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/handler"
)

// Router maps method and path patterns to handlers. Patterns use
// http.ServeMux syntax without the method prefix.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	// Method registers h for every listed method; it panics on an empty or
	// unknown method.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends global middleware, which also wraps the 404 and 405
	// fallbacks. It panics once routes exist.
	Use(middlewares ...handler.Middleware[C])
	// With returns an inline router whose routes get the extra middleware.
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]

	// Routes lists registrations in order.
	Routes() []Route
}

type Route struct {
	Method  string
	Pattern string
}

// New builds a router. Context types other than *Context need
// WithContextFactory.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}

type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the plain-text default.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware is Use at construction time.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger receives panics that happen after the response was written.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if l != nil {
			m.logger = l
		}
	}
}
