package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config describes a token bucket.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

// Validate reports whether every field is positive.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	if c.RefillRate <= 0 {
		errs = append(errs, fmt.Errorf("refill rate must be positive, got %d", c.RefillRate))
	}
	if c.RefillInterval <= 0 {
		errs = append(errs, fmt.Errorf("refill interval must be positive, got %s", c.RefillInterval))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// Store keeps bucket state per key.
type Store interface {
	// ConsumeTokens refills the bucket for key and takes tokens from it if
	// enough are available. It returns the tokens left (negative when the
	// request was denied) and the time of the next refill.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Clock is implemented by stores with their own time source. A Bucket over
// such a store measures RetryAfter with it.
type Clock interface {
	Now() time.Time
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time

	decidedAt time.Time
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is how long a denied caller should wait. Zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	from := r.decidedAt
	if from.IsZero() {
		from = time.Now()
	}
	return max(r.ResetAt.Sub(from), 0)
}

// Bucket applies one Config to many keys.
type Bucket struct {
	store Store
	cfg   Config
	now   func() time.Time
}

func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Bucket{store: store, cfg: cfg, now: time.Now}
	if c, ok := store.(Clock); ok {
		b.now = c.Now
	}
	return b, nil
}

// Allow takes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key. n must not exceed the bucket capacity.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.cfg.Capacity {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}

	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, fmt.Errorf("consume tokens: %w", err)
	}

	return Result{Limit: b.cfg.Capacity, Remaining: remaining, ResetAt: resetAt, decidedAt: b.now()}, nil
}

// Reset refills the bucket for key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
