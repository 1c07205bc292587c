package session_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tasktrackr/core/session"
)

// mockStore implements session.Store for failure-path tests.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, sess session.Session) error {
	return m.Called(ctx, sess).Error(0)
}

func (m *mockStore) Get(ctx context.Context, tokenHash string) (session.Session, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *mockStore) Touch(ctx context.Context, tokenHash string, lastSeenAt, expiresAt time.Time) error {
	return m.Called(ctx, tokenHash, lastSeenAt, expiresAt).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func newManager(t *testing.T, opts ...session.Option) (*session.Manager, *session.MemoryStore, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	store := session.NewMemoryStore()
	opts = append([]session.Option{session.WithClock(clock.Now)}, opts...)
	return session.NewManager(store, opts...), store, clock
}

func TestManager_IssueAndValidate(t *testing.T) {
	t.Parallel()

	mgr, store, clock := newManager(t)
	ctx := context.Background()
	userID := uuid.New()

	sess, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(sess.Token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, session.HashToken(sess.Token), sess.TokenHash)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, clock.Now().Add(24*time.Hour), sess.ExpiresAt)

	stored, err := store.Get(ctx, sess.TokenHash)
	require.NoError(t, err)
	assert.Empty(t, stored.Token, "plain token must not be persisted")

	got, err := mgr.Validate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestManager_TokensAreUnique(t *testing.T) {
	t.Parallel()

	mgr, _, _ := newManager(t)
	seen := make(map[string]bool)
	for range 100 {
		sess, err := mgr.Issue(context.Background(), uuid.New())
		require.NoError(t, err)
		require.False(t, seen[sess.Token])
		seen[sess.Token] = true
	}
}

func TestManager_ValidateRejects(t *testing.T) {
	t.Parallel()

	mgr, _, _ := newManager(t)
	ctx := context.Background()

	for name, token := range map[string]string{
		"empty":       "",
		"garbage":     "not-a-token",
		"wrong size":  base64.RawURLEncoding.EncodeToString([]byte("short")),
		"bad charset": "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!",
		"unknown":     base64.RawURLEncoding.EncodeToString(make([]byte, 32)),
	} {
		_, err := mgr.Validate(ctx, token)
		assert.ErrorIs(t, err, session.ErrInvalid, name)
	}
}

func TestManager_Revoke(t *testing.T) {
	t.Parallel()

	mgr, store, _ := newManager(t)
	ctx := context.Background()

	sess, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, sess.Token))
	_, err = mgr.Validate(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrInvalid)
	assert.Zero(t, store.Len())

	require.NoError(t, mgr.Revoke(ctx, sess.Token), "revoke is idempotent")
	require.NoError(t, mgr.Revoke(ctx, "malformed"))
}

func TestManager_MultipleSessionsPerUser(t *testing.T) {
	t.Parallel()

	mgr, _, _ := newManager(t)
	ctx := context.Background()
	userID := uuid.New()

	a, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)
	b, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, a.Token))

	_, err = mgr.Validate(ctx, a.Token)
	assert.ErrorIs(t, err, session.ErrInvalid)
	got, err := mgr.Validate(ctx, b.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestManager_IdleExpiry(t *testing.T) {
	t.Parallel()

	mgr, store, clock := newManager(t, session.WithTTL(time.Hour), session.WithTouchInterval(time.Minute))
	ctx := context.Background()

	sess, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)

	// Activity slides the window.
	clock.Advance(50 * time.Minute)
	_, err = mgr.Validate(ctx, sess.Token)
	require.NoError(t, err)

	clock.Advance(50 * time.Minute)
	_, err = mgr.Validate(ctx, sess.Token)
	require.NoError(t, err)

	// No activity for a full TTL.
	clock.Advance(time.Hour)
	_, err = mgr.Validate(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrInvalid)
	assert.Zero(t, store.Len(), "expired session is dropped on access")

	_, err = mgr.Validate(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrInvalid)
}

func TestManager_TouchThrottled(t *testing.T) {
	t.Parallel()

	mgr, store, clock := newManager(t, session.WithTTL(time.Hour), session.WithTouchInterval(10*time.Minute))
	ctx := context.Background()

	sess, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	_, err = mgr.Validate(ctx, sess.Token)
	require.NoError(t, err)

	stored, err := store.Get(ctx, sess.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, sess.ExpiresAt, stored.ExpiresAt, "touch skipped inside interval")

	clock.Advance(5 * time.Minute)
	_, err = mgr.Validate(ctx, sess.Token)
	require.NoError(t, err)

	stored, err = store.Get(ctx, sess.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), stored.LastSeenAt)
	assert.Equal(t, clock.Now().Add(time.Hour), stored.ExpiresAt)
}

func TestManager_AbsoluteLifetime(t *testing.T) {
	t.Parallel()

	mgr, store, clock := newManager(t,
		session.WithTTL(time.Hour),
		session.WithMaxLifetime(3*time.Hour),
		session.WithTouchInterval(0),
	)
	ctx := context.Background()

	sess, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)
	created := clock.Now()

	for range 4 {
		clock.Advance(40 * time.Minute)
		_, err = mgr.Validate(ctx, sess.Token)
		require.NoError(t, err)
	}

	stored, err := store.Get(ctx, sess.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, created.Add(3*time.Hour), stored.ExpiresAt, "expiry capped at max lifetime")

	clock.Advance(20 * time.Minute)
	_, err = mgr.Validate(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrInvalid)
}

func TestManager_CleanupExpired(t *testing.T) {
	t.Parallel()

	mgr, store, clock := newManager(t, session.WithTTL(time.Hour))
	ctx := context.Background()

	_, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	fresh, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	n, err := mgr.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())

	_, err = mgr.Validate(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestManager_Janitor(t *testing.T) {
	t.Parallel()

	swept := make(chan struct{}, 1)
	store := &mockStore{}
	store.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(0), nil).Run(func(mock.Arguments) {
		select {
		case swept <- struct{}{}:
		default:
		}
	})
	mgr := session.NewManager(store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mgr.Janitor(ctx, 5*time.Millisecond)() }()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("janitor never swept")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestManager_StoreFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storeErr := errors.New("connection reset")

	t.Run("issue", func(t *testing.T) {
		store := &mockStore{}
		store.On("Create", mock.Anything, mock.Anything).Return(storeErr)

		_, err := session.NewManager(store).Issue(ctx, uuid.New())
		assert.ErrorIs(t, err, session.ErrCreateSession)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("validate load", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Session{}, storeErr)

		token := base64.RawURLEncoding.EncodeToString(make([]byte, 32))
		_, err := session.NewManager(store).Validate(ctx, token)
		assert.ErrorIs(t, err, session.ErrLoadSession)
		assert.NotErrorIs(t, err, session.ErrInvalid)
	})

	t.Run("touch failure keeps session valid", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Session{
			UserID:     userID,
			CreatedAt:  now.Add(-time.Hour),
			LastSeenAt: now.Add(-time.Hour),
			ExpiresAt:  now.Add(time.Hour),
		}, nil)
		store.On("Touch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storeErr)

		token := base64.RawURLEncoding.EncodeToString(make([]byte, 32))
		got, err := session.NewManager(store).Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("touch finds record gone", func(t *testing.T) {
		now := time.Now()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Session{
			UserID:     uuid.New(),
			CreatedAt:  now.Add(-time.Hour),
			LastSeenAt: now.Add(-time.Hour),
			ExpiresAt:  now.Add(time.Hour),
		}, nil)
		store.On("Touch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(session.ErrNotFound)

		token := base64.RawURLEncoding.EncodeToString(make([]byte, 32))
		_, err := session.NewManager(store).Validate(ctx, token)
		assert.ErrorIs(t, err, session.ErrInvalid)
	})

	t.Run("revoke", func(t *testing.T) {
		store := &mockStore{}
		store.On("Delete", mock.Anything, mock.Anything).Return(storeErr)

		token := base64.RawURLEncoding.EncodeToString(make([]byte, 32))
		err := session.NewManager(store).Revoke(ctx, token)
		assert.ErrorIs(t, err, session.ErrDeleteSession)
	})
}

func TestManager_ConfigNormalized(t *testing.T) {
	t.Parallel()

	mgr := session.NewManager(session.NewMemoryStore(), session.WithConfig(session.Config{}))
	assert.Equal(t, 24*time.Hour, mgr.TTL())
	assert.Equal(t, 168*time.Hour, mgr.MaxLifetime())
}
