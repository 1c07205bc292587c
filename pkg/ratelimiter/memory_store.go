package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/tasktrackr/core/logger"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	staleAfter      time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often Run evicts idle buckets.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.cleanupInterval = d
		}
	}
}

// WithStaleAfter sets how long a bucket may stay unused before eviction.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

func WithMemoryStoreLogger(log *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if log != nil {
			ms.logger = log
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucket),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		logger:          logger.Discard(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// Now reads the store's clock.
func (ms *MemoryStore) Now() time.Time { return ms.now() }

func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}
	b.lastAccess = now

	// Whole intervals only; capped so a long idle bucket cannot overflow.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if b.tokens == cfg.Capacity {
			b.lastRefill = now
		}
	}

	resetAt := b.lastRefill.Add(cfg.RefillInterval)
	if b.tokens < tokens {
		return b.tokens - tokens, resetAt, nil
	}

	b.tokens -= tokens
	return b.tokens, resetAt, nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	delete(ms.buckets, key)
	ms.mu.Unlock()
	return nil
}

// Len returns the number of tracked keys.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}

// RemoveStale drops buckets not used within the stale window and returns how
// many were removed.
func (ms *MemoryStore) RemoveStale() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cutoff := ms.now().Add(-ms.staleAfter)
	removed := 0
	for key, b := range ms.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(ms.buckets, key)
			removed++
		}
	}
	return removed
}

// Run evicts idle buckets until ctx is cancelled. It always returns nil, which
// makes it safe to hand to an errgroup.
func (ms *MemoryStore) Run(ctx context.Context) error {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := ms.RemoveStale(); n > 0 {
				ms.logger.DebugContext(ctx, "rate limiter buckets evicted", slog.Int("count", n))
			}
		}
	}
}
