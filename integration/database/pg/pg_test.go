package pg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tasktrackr/integration/database/pg"
)

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

			b := pg.Backoff(tt.attempts, tt.interval)
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
