// Package router provides a generic HTTP router with middleware support and
// custom request contexts, built on http.ServeMux path matching.
//
// Patterns use the net/http syntax without a method or host: "/me",
// "/tasks/{id}", "/files/{path...}". A bare "/" matches only the root path;
// every unmatched path is passed to the error handler as ErrNotFound, and a
// known path requested with an unregistered method as ErrMethodNotAllowed
// (with an Allow header). HEAD is served by the GET handler when no HEAD
// handler exists.
//
// # Basic Usage
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Get("/tasks/{id}", func(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"id": ctx.Param("id")})
//	})
//	http.ListenAndServe(":8080", r)
//
// # Middleware
//
// Global middleware registered with Use or WithMiddleware wraps every request,
// including the not-found and method-not-allowed fallbacks, so a CORS
// middleware can answer preflight requests for any path. It must be added
// before the first route. Inline routers from With and Group add middleware
// to their own routes only:
//
//	r.With(middleware.RequireAuth[*router.Context](guard)).Get("/me", me)
//
// # Custom Contexts
//
// Any type implementing handler.Context can be used; a factory is required
// for types other than *Context:
//
//	r := router.New[*app.Context](router.WithContextFactory(app.NewContext))
//
// # Panics
//
// Panics in handlers are recovered and passed to the error handler as a
// PanicError. If the response was already written, the panic is only logged.
package router
