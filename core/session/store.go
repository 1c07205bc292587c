package session

import (
	"context"
	"time"
)

// Store defines the persistence interface for sessions, keyed by token hash.
// Implementations must handle concurrent access safely.
type Store interface {
	// Create persists a new session. A colliding key yields ErrDuplicateToken.
	Create(ctx context.Context, sess Session) error
	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, tokenHash string) (Session, error)
	// Touch updates activity and expiry of an existing session. It must never
	// recreate a deleted record; a missing record yields ErrNotFound.
	Touch(ctx context.Context, tokenHash string, lastSeenAt, expiresAt time.Time) error
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, tokenHash string) error
	// DeleteExpired removes sessions that expired at or before the given time
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
