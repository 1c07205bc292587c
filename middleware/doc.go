// Package middleware provides the HTTP middleware used by the tasktrackr API:
// CORS for the browser client, request ids, request logging, body limits,
// security headers, session handling and per-client rate limiting.
//
// Every middleware is generic over handler.Context. Middleware with more
// than one knob takes a Config struct through a WithConfig constructor.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
//	r.Use(
//		middleware.RequestID[*router.Context](middleware.TrustRequestID()),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.CORSWithConfig[*router.Context](corsCfg),
//		middleware.Session[*router.Context](transport),
//	)
//	r.With(middleware.RequireAuth[*router.Context](authService)).Get("/me", me)
//
// # Sessions
//
// Session only extracts the token; it never rejects a request. RequireAuth
// asks an Authenticator to validate the token and stores the resulting user
// id, retrievable with GetUserID. Missing, tampered, expired and revoked
// tokens all fail with the same error.
//
// # CORS
//
// Preflight requests are answered by the middleware itself, so register CORS
// with Use: global middleware also wraps the router's 404 and 405 fallbacks.
// Credentials are never allowed together with a wildcard origin.
//
// # Rate limiting
//
// RateLimit keys buckets by the connection address unless given another
// KeyExtractor. Denied requests get 429 with Retry-After. A failing limiter
// lets the request through.
package middleware
