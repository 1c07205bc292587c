// Package cookie provides HMAC-signed HTTP cookies with secret rotation.
//
// The first configured secret signs new cookies; all secrets are tried when
// verifying, so a secret can be rotated by prepending a new one:
//
//	m, err := cookie.New([]string{newSecret, oldSecret})
//	err = m.SetSigned(w, "tasktrackr_session", token, cookie.WithMaxAge(3600))
//	token, err := m.GetSigned(r, "tasktrackr_session")
//
// Tampered values fail with ErrInvalidSignature; missing cookies with
// ErrCookieNotFound.
package cookie
