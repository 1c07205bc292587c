package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the browser limit for one Set-Cookie value.
	MaxCookieSize   = 4096
	minSecretLength = 32
)

// Attributes are the Set-Cookie attributes applied to every cookie a Manager
// writes. MaxAge is in seconds; zero makes a browser-session cookie.
type Attributes struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Attributes)

func WithDomain(domain string) Option { return func(a *Attributes) { a.Domain = domain } }

func WithSecure(secure bool) Option { return func(a *Attributes) { a.Secure = secure } }

func WithSameSite(mode http.SameSite) Option { return func(a *Attributes) { a.SameSite = mode } }

// WithMaxAge works both as a Manager default and per SetSigned call.
func WithMaxAge(seconds int) Option { return func(a *Attributes) { a.MaxAge = seconds } }

func withPath(path string) Option { return func(a *Attributes) { a.Path = path } }

func withHTTPOnly(httpOnly bool) Option { return func(a *Attributes) { a.HttpOnly = httpOnly } }

// Manager writes and reads HMAC-SHA256 signed cookies. The MAC covers the
// cookie name as well as the value, so a signed value cannot be replayed
// under another name. keys[0] signs; every key verifies.
type Manager struct {
	keys    [][]byte
	attrs   Attributes
	maxSize int
}

// New builds a Manager. Empty secrets are ignored; at least one non-empty
// secret of 32+ characters is required. Defaults: Path "/", HttpOnly,
// SameSite=Lax.
func New(secrets []string, opts ...Option) (*Manager, error) {
	m := &Manager{
		attrs:   Attributes{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode},
		maxSize: MaxCookieSize,
	}

	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret #%d has %d characters", ErrSecretTooShort, i, len(s))
		}
		m.keys = append(m.keys, []byte(s))
	}
	if len(m.keys) == 0 {
		return nil, ErrNoSecret
	}

	for _, opt := range opts {
		opt(&m.attrs)
	}
	return m, nil
}

// SetSigned writes name=value signed with the current key.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	attrs := m.attrs
	for _, opt := range opts {
		opt(&attrs)
	}

	c := m.build(name, m.sign(name, value), attrs)
	if attrs.MaxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(attrs.MaxAge) * time.Second)
	}
	if size := len(c.String()); size > m.maxSize {
		return fmt.Errorf("%w: %q is %d bytes, limit %d", ErrCookieTooLarge, name, size, m.maxSize)
	}

	http.SetCookie(w, c)
	return nil
}

// GetSigned returns the verified value of the named cookie.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return m.verify(name, c.Value)
}

// Delete expires the named cookie on the client using the Manager's
// path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := m.build(name, "", m.attrs)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *Manager) build(name, value string, a Attributes) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     a.Path,
		Domain:   a.Domain,
		MaxAge:   a.MaxAge,
		Secure:   a.Secure,
		HttpOnly: a.HttpOnly,
		SameSite: a.SameSite,
	}
}

func mac(key []byte, name, value string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{'='})
	h.Write([]byte(value))
	return h.Sum(nil)
}

// sign encodes as base64url(value) "." base64url(mac).
func (m *Manager) sign(name, value string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(value)) + "." + enc.EncodeToString(mac(m.keys[0], name, value))
}

func (m *Manager) verify(name, signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, key := range m.keys {
		if hmac.Equal(sig, mac(key, name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}
