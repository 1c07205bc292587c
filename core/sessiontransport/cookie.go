package sessiontransport

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/tasktrackr/core/cookie"
)

const DefaultCookieName = "tasktrackr_session"

type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"tasktrackr_session"`
}

func DefaultCookieConfig() CookieConfig {
	return CookieConfig{CookieName: DefaultCookieName}
}

// Cookie keeps the token in a signed cookie. The cookie lifetime only hints
// the browser; the session manager decides whether a token is still valid.
type Cookie struct {
	cookies *cookie.Manager
	name    string
	maxAge  int
}

// NewCookie uses maxAge, rounded down to seconds, as the cookie Max-Age.
// A non-positive maxAge makes a browser-session cookie.
func NewCookie(cookies *cookie.Manager, name string, maxAge time.Duration) *Cookie {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie{cookies: cookies, name: name, maxAge: max(0, int(maxAge/time.Second))}
}

func NewCookieFromConfig(cfg CookieConfig, cookies *cookie.Manager, maxAge time.Duration) *Cookie {
	return NewCookie(cookies, cfg.CookieName, maxAge)
}

func (c *Cookie) Name() string { return c.name }

func (c *Cookie) Extract(r *http.Request) (string, error) {
	token, err := c.cookies.GetSigned(r, c.name)
	if errors.Is(err, cookie.ErrCookieNotFound) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return token, nil
}

func (c *Cookie) Embed(w http.ResponseWriter, token string) error {
	return c.cookies.SetSigned(w, c.name, token, cookie.WithMaxAge(c.maxAge))
}

func (c *Cookie) Clear(w http.ResponseWriter) {
	c.cookies.Delete(w, c.name)
}
