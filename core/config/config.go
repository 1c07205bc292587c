package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into the target struct.
var ErrParsingConfig = errors.New("failed to parse config from environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> value
)

// Load fills cfg from environment variables using `env` / `envDefault` tags.
// A .env file in the working directory is loaded once, without overriding
// variables that are already set. Each config type is parsed once and cached.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on error. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops all cached configs. Used by tests that change the environment.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}
