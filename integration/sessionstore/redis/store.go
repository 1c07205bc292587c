package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tasktrackr/core/session"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "tasktrackr:session:"

// Store is a session.Store backed by Redis. Each session is one JSON value
// whose Redis expiry equals the session's ExpiresAt, so Redis drops expired
// sessions on its own.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis session store.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(tokenHash string) string {
	return s.prefix + tokenHash
}

// Create stores the session with SET NX; an existing key yields
// session.ErrDuplicateToken.
func (s *Store) Create(ctx context.Context, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.client.SetArgs(ctx, s.key(sess.TokenHash), data, redis.SetArgs{
		Mode:     "NX",
		ExpireAt: keyDeadline(sess.ExpiresAt),
	}).Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return session.ErrDuplicateToken
	default:
		return fmt.Errorf("redis set: %w", err)
	}
}

func (s *Store) Get(ctx context.Context, tokenHash string) (session.Session, error) {
	data, err := s.client.Get(ctx, s.key(tokenHash)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return session.Session{}, session.ErrNotFound
	case err != nil:
		return session.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Touch rewrites the session with SET XX, which never recreates a key that
// was deleted in between.
func (s *Store) Touch(ctx context.Context, tokenHash string, lastSeenAt, expiresAt time.Time) error {
	sess, err := s.Get(ctx, tokenHash)
	if err != nil {
		return err
	}
	sess.LastSeenAt = lastSeenAt
	sess.ExpiresAt = expiresAt

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.client.SetArgs(ctx, s.key(tokenHash), data, redis.SetArgs{
		Mode:     "XX",
		ExpireAt: keyDeadline(expiresAt),
	}).Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return session.ErrNotFound
	default:
		return fmt.Errorf("redis set: %w", err)
	}
}

func (s *Store) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// keyDeadline rounds up to the whole second EXAT carries, so the key is
// never dropped before the session itself expires.
func keyDeadline(expiresAt time.Time) time.Time {
	d := expiresAt.Truncate(time.Second)
	if d.Before(expiresAt) {
		d = d.Add(time.Second)
	}
	return d
}

// DeleteExpired is a no-op: Redis expires keys itself.
func (s *Store) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
