package session

import "errors"

var (
	// ErrInvalid is returned for unknown, malformed, expired or revoked tokens.
	ErrInvalid = errors.New("invalid or expired session")
	// ErrNotFound is returned by stores when a session does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrDuplicateToken is returned by stores when a token hash already exists.
	ErrDuplicateToken = errors.New("session token already exists")
	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrCreateSession is returned when the store fails to persist a new session.
	ErrCreateSession = errors.New("failed to create session")
	// ErrLoadSession is returned when the store fails to load a session.
	ErrLoadSession = errors.New("failed to load session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
)
