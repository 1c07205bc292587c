// Package ratelimiter implements token bucket rate limiting over a pluggable
// Store.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each call to Allow takes one token; when none are left the
// request is denied and Result reports when to retry.
//
//	store := ratelimiter.NewMemoryStore()
//	go store.Run(ctx) // evicts idle buckets
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if !result.Allowed() {
//		// respond 429 with result.RetryAfter()
//	}
package ratelimiter
