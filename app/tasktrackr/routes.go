package tasktrackr

import (
	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/health"
	"github.com/dmitrymomot/tasktrackr/core/response"
	"github.com/dmitrymomot/tasktrackr/core/router"
	"github.com/dmitrymomot/tasktrackr/middleware"
	"github.com/dmitrymomot/tasktrackr/pkg/clientip"
)

func (a *App) routes() router.Router[*Context] {
	r := router.New[*Context](
		router.WithContextFactory(newContext),
		router.WithErrorHandler(response.JSONErrorHandlerWithLogger[*Context](a.logger)),
		router.WithLogger[*Context](a.logger),
	)

	r.Use(
		middleware.RequestID[*Context](middleware.TrustRequestID()),
		middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{
			Logger: a.logger,
			Skip:   isProbe,
		}),
		middleware.CORSWithConfig[*Context](a.config.CORS.CORSConfig()),
		middleware.SecurityHeaders[*Context](),
		middleware.BodyLimit[*Context](a.config.MaxBodySize),
		middleware.SessionWithConfig[*Context](middleware.SessionConfig{
			Transport: a.transport,
			Logger:    a.logger,
		}),
	)

	r.Get("/live", health.Liveness[*Context])
	r.Get("/ready", health.Readiness[*Context](a.logger, a.checks...))

	r.Group(func(r router.Router[*Context]) {
		if a.limiter != nil {
			r.Use(middleware.RateLimit[*Context](middleware.RateLimitConfig{
				Limiter:      a.limiter,
				KeyExtractor: a.clientKey,
				Logger:       a.logger,
			}))
		}
		r.Post("/register", a.register)
		r.Post("/login", a.login)
	})
	r.Get("/logout", a.logout)

	r.Group(func(r router.Router[*Context]) {
		r.Use(middleware.RequireAuth[*Context](a.auth))
		r.Get("/me", a.me)
	})

	return r
}

func (a *App) clientKey(ctx handler.Context) string {
	if a.config.RateLimit.TrustProxy {
		return clientip.GetIP(ctx.Request())
	}
	return clientip.RemoteIP(ctx.Request())
}

func isProbe(ctx handler.Context) bool {
	switch ctx.Request().URL.Path {
	case "/live", "/ready":
		return true
	}
	return false
}
