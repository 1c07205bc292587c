package pg_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tasktrackr/integration/database/pg"
)

type fakeTx struct{ pgx.Tx }

type fakeQuerier struct{ pg.Querier }

func TestWithTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := pg.TxFromContext(ctx)
	assert.False(t, ok)

	assert.Equal(t, ctx, pg.WithTx(ctx, nil))

	tx := fakeTx{}
	got, ok := pg.TxFromContext(pg.WithTx(ctx, tx))
	assert.True(t, ok)
	assert.Equal(t, tx, got)
}

func TestConn(t *testing.T) {
	t.Parallel()

	pool := fakeQuerier{}
	assert.Equal(t, pool, pg.Conn(context.Background(), pool))

	tx := fakeTx{}
	assert.Equal(t, pg.Querier(tx), pg.Conn(pg.WithTx(context.Background(), tx), pool))
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsDuplicateKeyError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsNotFoundError(nil))
}
