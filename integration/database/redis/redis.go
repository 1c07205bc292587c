package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// Connect parses cfg.ConnectionURL, creates a client and pings it until it
// answers, the retry budget is spent, or cfg.ConnectTimeout elapses.
func Connect(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrMissingURL
	}
	if !strings.HasPrefix(cfg.ConnectionURL, "redis://") && !strings.HasPrefix(cfg.ConnectionURL, "rediss://") {
		return nil, fmt.Errorf("%w: unsupported scheme", ErrInvalidURL)
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	err = retry.Do(ctx, backoff(cfg.RetryAttempts, cfg.RetryInterval),
		func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
	if err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrNotReady, err)
	}

	return client, nil
}

// backoff pings every interval, at most attempts times in total.
func backoff(attempts int, interval time.Duration) retry.Backoff {
	if interval <= 0 {
		interval = time.Second
	}
	return retry.WithMaxRetries(uint64(max(attempts, 1)-1), retry.NewConstant(interval))
}

// Healthcheck returns a readiness check that pings Redis.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnhealthy, err)
		}
		return nil
	}
}
