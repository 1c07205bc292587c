package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. Expired records stay until
// DeleteExpired runs, so it is meant to be paired with Manager.Janitor.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Create(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.TokenHash]; ok {
		return ErrDuplicateToken
	}
	sess.Token = ""
	s.sessions[sess.TokenHash] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, tokenHash string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Touch(_ context.Context, tokenHash string, lastSeenAt, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return ErrNotFound
	}
	sess.LastSeenAt = lastSeenAt
	sess.ExpiresAt = expiresAt
	s.sessions[tokenHash] = sess
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, tokenHash)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for hash, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, hash)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
