package credential_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tasktrackr/core/credential"
)

func newStore() (*credential.Store, *credential.MemoryRepository) {
	repo := credential.NewMemoryRepository()
	return credential.NewStore(repo, credential.WithBcryptCost(bcrypt.MinCost)), repo
}

func TestStore_CreateAndFind(t *testing.T) {
	t.Parallel()

	store, _ := newStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "  alice@x.com ", "pw123")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	user, err := store.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NotContains(t, string(user.PasswordHash), "pw123")
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user, byID)

	_, err = store.FindByEmail(ctx, "ALICE@x.com")
	assert.ErrorIs(t, err, credential.ErrNotFound, "emails are case-sensitive")

	_, err = store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestStore_Duplicate(t *testing.T) {
	t.Parallel()

	store, repo := newStore()
	ctx := context.Background()

	_, err := store.Create(ctx, "alice@x.com", "pw123")
	require.NoError(t, err)

	_, err = store.Create(ctx, " alice@x.com", "other")
	assert.ErrorIs(t, err, credential.ErrDuplicateUser)
	assert.Equal(t, 1, repo.Count())
}

func TestStore_ConcurrentDuplicate(t *testing.T) {
	t.Parallel()

	store, repo := newStore()
	ctx := context.Background()

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, "race@x.com", "pw")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, credential.ErrDuplicateUser):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, repo.Count())
}

func TestStore_VerifyPassword(t *testing.T) {
	t.Parallel()

	store, _ := newStore()
	ctx := context.Background()

	_, err := store.Create(ctx, "bob@x.com", "correct horse")
	require.NoError(t, err)
	user, err := store.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)

	assert.True(t, store.VerifyPassword(&user, "correct horse"))
	assert.False(t, store.VerifyPassword(&user, "battery staple"))
	assert.False(t, store.VerifyPassword(nil, "correct horse"))
	assert.False(t, store.VerifyPassword(nil, ""))
}

func TestStore_PasswordTooLong(t *testing.T) {
	t.Parallel()

	store, repo := newStore()
	_, err := store.Create(context.Background(), "long@x.com", strings.Repeat("a", 73))
	assert.ErrorIs(t, err, credential.ErrPasswordTooLong)
	assert.Zero(t, repo.Count())
}

func TestUser_Profile(t *testing.T) {
	t.Parallel()

	u := credential.User{ID: uuid.New(), Email: "a@b.c", PasswordHash: []byte("hash")}
	p := u.Profile()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Email, p.Email)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store, repo := newStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "alice@x.com", "pw123")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	require.NoError(t, store.Delete(ctx, id), "deleting twice is fine")
	assert.Zero(t, repo.Count())

	_, err = store.FindByEmail(ctx, "alice@x.com")
	assert.ErrorIs(t, err, credential.ErrNotFound)

	_, err = store.Create(ctx, "alice@x.com", "pw123")
	assert.NoError(t, err, "the email is free again")
}
