package ratelimiter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tasktrackr/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *ratelimiter.MemoryStore, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now), ratelimiter.WithStaleAfter(time.Hour))
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, store, clk
}

func TestBucket_ExhaustAndRefill(t *testing.T) {
	t.Parallel()

	b, _, clk := newLimiter(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: 10 * time.Second})
	ctx := context.Background()

	for i := 2; i >= 0; i-- {
		res, err := b.Allow(ctx, "203.0.113.5")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := b.Allow(ctx, "203.0.113.5")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, clk.Now().Add(10*time.Second), res.ResetAt)

	other, err := b.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys are independent")

	clk.Advance(10 * time.Second)
	res, err = b.Allow(ctx, "203.0.113.5")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	clk.Advance(24 * time.Hour)
	res, err = b.Allow(ctx, "203.0.113.5")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "refill never exceeds capacity")
}

func TestResult_RetryAfterUsesStoreClock(t *testing.T) {
	t.Parallel()

	b, _, clk := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 30 * time.Second})
	ctx := context.Background()

	res, err := b.Allow(ctx, "203.0.113.5")
	require.NoError(t, err)
	assert.Zero(t, res.RetryAfter())

	clk.Advance(5 * time.Second)
	res, err = b.Allow(ctx, "203.0.113.5")
	require.NoError(t, err)
	require.False(t, res.Allowed())
	assert.Equal(t, 25*time.Second, res.RetryAfter(), "measured on the store clock, not the wall clock")

	assert.Zero(t, ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(-time.Minute)}.RetryAfter())
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()

	b, _, _ := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	ctx := context.Background()

	_, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, res.Allowed())

	require.NoError(t, b.Reset(ctx, "k"))
	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)

	_, err = ratelimiter.NewBucket(nil, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket_AllowNRejectsBadCounts(t *testing.T) {
	t.Parallel()

	b, _, _ := newLimiter(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Second})

	_, err := b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	_, err = b.AllowN(context.Background(), "k", 3)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestMemoryStore_RemoveStale(t *testing.T) {
	t.Parallel()

	b, store, clk := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	_, _ = b.Allow(ctx, "old")
	clk.Advance(2 * time.Hour)
	_, _ = b.Allow(ctx, "fresh")

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, store.RemoveStale())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- store.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestBucket_ConcurrentNeverOvershoots(t *testing.T) {
	t.Parallel()

	b, _, _ := newLimiter(t, ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowed.Load())
}
