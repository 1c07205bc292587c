package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tasktrackr/core/config"
)

type testConfig struct {
	Name    string        `env:"TT_TEST_NAME" envDefault:"default"`
	Timeout time.Duration `env:"TT_TEST_TIMEOUT" envDefault:"5s"`
	Origins []string      `env:"TT_TEST_ORIGINS" envSeparator:"," envDefault:"a,b"`
}

type requiredConfig struct {
	Secret string `env:"TT_TEST_REQUIRED_SECRET,required"`
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("TT_TEST_NAME", "custom")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Origins)
}

func TestLoad_Cached(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("TT_TEST_NAME", "first")

	var first testConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TT_TEST_NAME", "second")
	var second testConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "first", second.Name)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&requiredConfig{}) })
}
