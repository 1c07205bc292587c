package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/core/response"
	"github.com/dmitrymomot/tasktrackr/pkg/clientip"
	"github.com/dmitrymomot/tasktrackr/pkg/ratelimiter"
)

// RateLimiter decides whether the request identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
}

// ErrTooManyAttempts is returned when a client exhausts its bucket.
var ErrTooManyAttempts = response.ErrTooManyRequests.WithMessage("Too many attempts, try again later")

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Limiter is required.
	Limiter RateLimiter
	// KeyExtractor picks the bucket key (default: connection address, proxy headers ignored)
	KeyExtractor func(ctx handler.Context) string
	// SetHeaders adds X-RateLimit-* headers to every response
	SetHeaders bool
	Logger     *slog.Logger
}

// RateLimit throttles requests per key and answers 429 with Retry-After once
// a key runs out of tokens. Limiter failures fail open: the request proceeds
// and the error is logged. Panics if no limiter is provided.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			return clientip.RemoteIP(ctx.Request())
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			key := cfg.KeyExtractor(ctx)
			result, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "rate limiter unavailable",
					logger.Component("ratelimit"), logger.Error(err))
				return next(ctx)
			}

			if !result.Allowed() {
				cfg.Logger.WarnContext(ctx, "rate limit exceeded",
					logger.Component("ratelimit"), slog.String("key", key))
				return withRateLimitHeaders(response.Error(ErrTooManyAttempts), result, true)
			}

			resp := next(ctx)
			if cfg.SetHeaders {
				return withRateLimitHeaders(resp, result, false)
			}
			return resp
		}
	}
}

func withRateLimitHeaders(resp handler.Response, result ratelimiter.Result, denied bool) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if denied {
			// Rounded up so clients never retry a moment too early.
			secs := int(math.Ceil(result.RetryAfter().Seconds()))
			h.Set("Retry-After", strconv.Itoa(max(1, secs)))
		}
		return resp(w, r)
	}
}
