package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/dmitrymomot/tasktrackr/core/handler"
)

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// registry is shared by a router and all of its inline routers.
type registry[C handler.Context] struct {
	serveMux *http.ServeMux
	routes   map[string]*route[C]
	list     []Route
}

// route holds the per-method handlers of a single path pattern.
type route[C handler.Context] struct {
	pattern  string
	handlers map[string]handler.HandlerFunc[C]
}

// mux is the private implementation of Router interface.
// Path matching is delegated to http.ServeMux; method dispatch, middleware
// and error handling happen here.
type mux[C handler.Context] struct {
	reg          *registry[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	parent       *mux[C] // for inline routers
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		reg: &registry[C]{
			serveMux: http.NewServeMux(),
			routes:   make(map[string]*route[C]),
		},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	// Everything no route claims ends up in the not-found fallback.
	m.reg.serveMux.Handle("/", m.dispatcher(nil))

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.reg.serveMux.ServeHTTP(w, r)
}

// root returns the top-level router that owns global middleware.
func (m *mux[C]) root() *mux[C] {
	for m.parent != nil {
		m = m.parent
	}
	return m
}

// dispatcher returns the http.Handler for a route; a nil route serves 404.
// Errors and panics reach the error handler only while nothing has been
// written yet; later ones are logged.
func (m *mux[C]) dispatcher(rt *route[C]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		ctx := m.newContext(sw, r)

		fail := func(err error) {
			if sw.written() {
				m.logger.ErrorContext(ctx, "request failed after response was written",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", sw.status),
					slog.Any("error", err),
				)
				return
			}
			m.errorHandler(ctx, err)
		}

		defer func() {
			if p := recover(); p != nil {
				fail(&panicError{value: p, stack: debug.Stack()})
			}
		}()

		fn := m.endpoint(rt, r.Method, sw)
		if len(m.middlewares) > 0 {
			fn = chain(m.middlewares, fn)
		}

		resp := fn(ctx)
		if resp == nil {
			fail(ErrNilResponse)
			return
		}
		if err := resp(sw, ctx.Request()); err != nil {
			fail(err)
		}
	})
}

// endpoint picks the handler for the request method or a fallback that fails
// with ErrNotFound or ErrMethodNotAllowed.
func (m *mux[C]) endpoint(rt *route[C], method string, w http.ResponseWriter) handler.HandlerFunc[C] {
	if rt == nil {
		return failWith[C](ErrNotFound)
	}

	if fn, ok := rt.handlers[method]; ok {
		return fn
	}
	if method == http.MethodHead {
		if fn, ok := rt.handlers[http.MethodGet]; ok {
			return fn
		}
	}

	w.Header().Set("Allow", strings.Join(rt.allowed(), ", "))
	return failWith[C](ErrMethodNotAllowed)
}

func failWith[C handler.Context](err error) handler.HandlerFunc[C] {
	return func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error {
			return err
		}
	}
}

func (rt *route[C]) allowed() []string {
	allowed := make([]string, 0, len(rt.handlers)+1)
	for _, method := range knownMethods {
		if _, ok := rt.handlers[method]; ok {
			allowed = append(allowed, method)
		} else if method == http.MethodHead && rt.handlers[http.MethodGet] != nil {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(knownMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.parent != nil {
		m.middlewares = append(m.middlewares, middlewares...)
		return
	}
	if len(m.reg.list) > 0 {
		panic(ErrRoutesDefined)
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		reg:          m.reg,
		parent:       m,
		middlewares:  slices.Clone(middlewares),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	return slices.Clone(m.reg.list)
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	// "/" on its own means the root path only; the catch-all belongs to 404.
	key := pattern
	if key == "/" {
		key = "/{$}"
	}

	// Inline routers wrap the endpoint with their own middleware and every
	// inline ancestor's, outermost first. Global middleware runs at dispatch.
	var stack []handler.Middleware[C]
	for curr := m; curr.parent != nil; curr = curr.parent {
		stack = append(slices.Clone(curr.middlewares), stack...)
	}
	if len(stack) > 0 {
		fn = chain(stack, fn)
	}

	root := m.root()
	rt, ok := root.reg.routes[key]
	if !ok {
		rt = &route[C]{pattern: key, handlers: make(map[string]handler.HandlerFunc[C])}
		root.reg.routes[key] = rt
		root.reg.serveMux.Handle(key, root.dispatcher(rt))
	}
	if _, exists := rt.handlers[method]; exists {
		panic(fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, pattern))
	}
	rt.handlers[method] = fn
	root.reg.list = append(root.reg.list, Route{Method: method, Pattern: pattern})
}

// chain builds a single handler from a middleware stack and endpoint.
// The first middleware in the slice runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
