package tasktrackr

import "errors"

var (
	ErrUnknownStore = errors.New("unknown storage backend")
	ErrNilOption    = errors.New("option value cannot be nil")
	ErrNoCookieKey  = errors.New("COOKIE_SECRETS is required in production")
)
