package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// tokenBytes is the amount of randomness in a session token (256 bits).
const tokenBytes = 32

// Session is an authenticated session bound to a single user.
// A user may hold any number of concurrent sessions.
type Session struct {
	// Token is the bearer credential handed to the client. It is only set on
	// the value returned by Issue and is never persisted.
	Token string `json:"-"`

	// TokenHash is the hex SHA-256 of Token and the store key.
	TokenHash string `json:"token_hash"`

	UserID     uuid.UUID `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is expired at the given time.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// HashToken returns the store key for a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// generateToken creates a cryptographically secure random token
// encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// wellFormed reports whether token could have been produced by generateToken.
func wellFormed(token string) bool {
	if len(token) != base64.RawURLEncoding.EncodedLen(tokenBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(token)
	return err == nil
}
