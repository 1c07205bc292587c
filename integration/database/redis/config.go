package redis

import (
	"errors"
	"time"
)

var (
	ErrMissingURL = errors.New("redis: REDIS_URL is empty")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	ErrNotReady   = errors.New("redis: server did not answer PING in time")
	ErrUnhealthy  = errors.New("redis: healthcheck failed")
)

// Config holds Redis connection settings. ConnectTimeout bounds the whole
// retry loop in Connect.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
