package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/core/response"
)

// CheckTimeout bounds one readiness probe, all checks together.
const CheckTimeout = 3 * time.Second

// Check reports whether one dependency can serve traffic.
type Check func(context.Context) error

// Liveness answers 200 "ALIVE" as long as the process can serve HTTP.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Readiness runs every check concurrently and answers 200 "READY", or 503
// as soon as one fails. The failure cause is logged, never returned.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		probeCtx, cancel := context.WithTimeout(ctx, CheckTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(probeCtx)
		for _, check := range checks {
			g.Go(func() error { return check(gctx) })
		}
		if err := g.Wait(); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}

		return response.String("READY")
	}
}
