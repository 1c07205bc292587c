package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tasktrackr/core/config"
	"github.com/dmitrymomot/tasktrackr/core/session"
)

func TestConfig_FromEnv(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_MAX_LIFETIME", "48h")

	var cfg session.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 2*time.Hour, cfg.TTL)
	assert.Equal(t, 48*time.Hour, cfg.MaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.TouchInterval)
	assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, 24*time.Hour, cfg.TTL)
	assert.Equal(t, 168*time.Hour, cfg.MaxLifetime)
}
