package tasktrackr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/integration/credentialstore/postgres"
	"github.com/dmitrymomot/tasktrackr/integration/database/pg"
	"github.com/dmitrymomot/tasktrackr/integration/database/redis"
	sessionredis "github.com/dmitrymomot/tasktrackr/integration/sessionstore/redis"
)

// OpenStores connects the storage backends selected in cfg and returns the
// options that install them, plus a function releasing the connections.
// Memory backends need no options. On error nothing is left open.
func OpenStores(ctx context.Context, cfg Config, log *slog.Logger) ([]Option, func(), error) {
	var (
		opts    []Option
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) ([]Option, func(), error) {
		closeAll()
		return nil, nil, err
	}

	switch cfg.CredentialStore {
	case "", StoreMemory:
	case StorePostgres:
		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return fail(fmt.Errorf("postgres: %w", err))
		}
		closers = append(closers, pool.Close)

		if err := postgres.Migrate(ctx, pool, cfg.DB, log); err != nil {
			return fail(fmt.Errorf("postgres: %w", err))
		}

		opts = append(opts,
			WithCredentialRepository(postgres.New(pool)),
			WithReadinessChecks(pg.Healthcheck(pool)),
		)
	default:
		return fail(fmt.Errorf("%w: CREDENTIAL_STORE=%q", ErrUnknownStore, cfg.CredentialStore))
	}

	switch cfg.SessionStore {
	case "", StoreMemory:
	case StoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fail(fmt.Errorf("redis: %w", err))
		}
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		})

		opts = append(opts,
			WithSessionStore(sessionredis.New(client)),
			WithReadinessChecks(redis.Healthcheck(client)),
		)
	default:
		return fail(fmt.Errorf("%w: SESSION_STORE=%q", ErrUnknownStore, cfg.SessionStore))
	}

	return opts, closeAll, nil
}
