package cookie

import "errors"

var (
	ErrNoSecret        = errors.New("cookie: no signing secret configured")
	ErrSecretTooShort  = errors.New("cookie: secret must be at least 32 characters long")
	ErrInvalidSameSite = errors.New("cookie: invalid SameSite mode")
	ErrCookieTooLarge  = errors.New("cookie: encoded cookie exceeds size limit")

	ErrCookieNotFound   = errors.New("cookie: not found in request")
	ErrInvalidFormat    = errors.New("cookie: malformed signed value")
	ErrInvalidSignature = errors.New("cookie: signature mismatch")
)
