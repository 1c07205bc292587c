// Package pg provides PostgreSQL connection management on pgx with goose
// migrations and readiness checks.
//
// Connect builds a pgxpool.Pool from Config (env prefix PG_) and verifies it
// with a ping, retrying at a fixed interval. Migrate applies migrations
// from an fs.FS, usually an embed.FS owned by the package that defines the
// schema.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck returns a function suitable for health.Readiness.
//
// Error classification helpers (IsDuplicateKeyError, IsNotFoundError) let repositories map driver errors to their own sentinels.
// WithTx and Conn let repositories join a transaction started by the caller.
package pg
