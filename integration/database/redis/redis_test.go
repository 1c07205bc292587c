package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tasktrackr/integration/database/redis"
)

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{name: "empty", url: "", want: redis.ErrMissingURL},
		{name: "wrong scheme", url: "http://localhost:6379", want: redis.ErrInvalidURL},
		{name: "bad db", url: "redis://localhost:6379/notanumber", want: redis.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrNotReady)
}

func TestConnect_Live(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, redis.Healthcheck(client)(context.Background()))
}

func TestBackoff_FixedInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attempts int
		interval time.Duration
		want     []time.Duration
	}{
		{name: "three attempts", attempts: 3, interval: 2 * time.Second, want: []time.Duration{2 * time.Second, 2 * time.Second}},
		{name: "single attempt", attempts: 1, interval: time.Second, want: nil},
		{name: "defaults", attempts: 0, interval: 0, want: nil},
		{name: "zero interval", attempts: 2, interval: 0, want: []time.Duration{time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := redis.Backoff(tt.attempts, tt.interval)
			var got []time.Duration
			for {
				d, stop := b.Next()
				if stop {
					break
				}
				got = append(got, d)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
