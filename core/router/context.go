package router

import (
	"context"
	"net/http"
	"time"
)

// Context is the default handler.Context implementation.
// All context.Context methods delegate to the request's context.
type Context struct {
	w http.ResponseWriter
	r *http.Request
}

// NewContext creates a Context for the given request.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *Context) Err() error {
	return c.r.Context().Err()
}

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the *http.Request associated with the context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter associated with the context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of a path wildcard, e.g. {id}.
func (c *Context) Param(key string) string {
	return c.r.PathValue(key)
}

// SetValue stores a value in the request context.
// Subsequent calls to Request() return the updated request.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
