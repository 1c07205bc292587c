package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/tasktrackr/core/logger"
)

// Config holds session manager configuration.
type Config struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`              // Idle timeout
	MaxLifetime     time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"168h"`    // Absolute cap from creation
	TouchInterval   time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`    // Min time between activity updates (0 = every request)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"` // Janitor sweep period
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             24 * time.Hour,
		MaxLifetime:     7 * 24 * time.Hour,
		TouchInterval:   5 * time.Minute,
		CleanupInterval: 10 * time.Minute,
	}
}

// normalize replaces unusable values with defaults.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.TTL <= 0 {
		c.TTL = def.TTL
	}
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = def.MaxLifetime
	}
	if c.TouchInterval < 0 {
		c.TouchInterval = 0
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	return c
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithConfig replaces the whole timing configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithTTL sets the idle timeout.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TTL = ttl
	}
}

// WithMaxLifetime sets the absolute session lifetime.
func WithMaxLifetime(d time.Duration) Option {
	return func(m *Manager) {
		m.cfg.MaxLifetime = d
	}
}

// WithTouchInterval sets the minimum time between session activity updates.
// Set to 0 to refresh expiry on every validation.
func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TouchInterval = interval
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger used for background and best-effort operations.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log.With(logger.Component("session"))
		}
	}
}
