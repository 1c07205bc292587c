package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tasktrackr/core/logger"
)

// Manager issues, validates and revokes sessions on top of a Store.
//
// Expiry is sliding: each validation at least TouchInterval after the last
// recorded activity pushes ExpiresAt to now+TTL, never past
// CreatedAt+MaxLifetime.
type Manager struct {
	store  Store
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		cfg:    DefaultConfig(),
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cfg = m.cfg.normalize()
	return m
}

// Issue creates a session for userID. The returned Session is the only place
// the plain token ever appears.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := m.now()
	sess := Session{
		TokenHash:  HashToken(token),
		UserID:     userID,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  m.expiry(now, now),
	}

	if err := m.store.Create(ctx, sess); err != nil {
		return Session{}, errors.Join(ErrCreateSession, err)
	}

	sess.Token = token
	return sess, nil
}

// Validate resolves a token to its user. Unknown, malformed, expired and
// revoked tokens all yield ErrInvalid; any other error is a store failure.
func (m *Manager) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	if !wellFormed(token) {
		return uuid.Nil, ErrInvalid
	}

	hash := HashToken(token)
	sess, err := m.store.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return uuid.Nil, ErrInvalid
		}
		return uuid.Nil, errors.Join(ErrLoadSession, err)
	}

	now := m.now()
	if sess.IsExpired(now) {
		if err := m.store.Delete(ctx, hash); err != nil {
			m.logger.WarnContext(ctx, "failed to delete expired session", logger.Error(err))
		}
		return uuid.Nil, ErrInvalid
	}

	if now.Sub(sess.LastSeenAt) >= m.cfg.TouchInterval {
		err := m.store.Touch(ctx, hash, now, m.expiry(sess.CreatedAt, now))
		switch {
		case errors.Is(err, ErrNotFound):
			// Revoked between Get and Touch.
			return uuid.Nil, ErrInvalid
		case err != nil:
			m.logger.WarnContext(ctx, "failed to touch session",
				logger.UserID(sess.UserID),
				logger.Error(err),
			)
		}
	}

	return sess.UserID, nil
}

// Revoke destroys the session behind token. Revoking an unknown or malformed
// token is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if !wellFormed(token) {
		return nil
	}
	if err := m.store.Delete(ctx, HashToken(token)); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes all expired sessions from the store.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

// Janitor returns a function that sweeps expired sessions every interval
// until ctx is cancelled. A non-positive interval uses CleanupInterval.
// It is meant to run in an errgroup next to the HTTP server.
func (m *Manager) Janitor(ctx context.Context, interval time.Duration) func() error {
	if interval <= 0 {
		interval = m.cfg.CleanupInterval
	}

	return func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := m.CleanupExpired(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					m.logger.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
					continue
				}
				if n > 0 {
					m.logger.DebugContext(ctx, "expired sessions removed", logger.Count("removed", n))
				}
			}
		}
	}
}

// MaxLifetime is the absolute session lifetime; transports use it as the
// client-side lifetime of the credential.
func (m *Manager) MaxLifetime() time.Duration {
	return m.cfg.MaxLifetime
}

// TTL returns the idle timeout.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.cfg.TTL)
	hardCap := createdAt.Add(m.cfg.MaxLifetime)
	if idle.After(hardCap) {
		return hardCap
	}
	return idle
}
