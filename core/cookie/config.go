package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// Config is the environment form of a Manager.
type Config struct {
	// Secrets is comma-separated; the first signs, all verify.
	Secrets  string `env:"COOKIE_SECRETS"`
	Path     string `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string `env:"COOKIE_DOMAIN"`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite string `env:"COOKIE_SAME_SITE" envDefault:"lax"`
	MaxSize  int    `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
}

// DefaultConfig matches the envDefault tags. Secrets stay empty.
func DefaultConfig() Config {
	return Config{Path: "/", HttpOnly: true, SameSite: "lax", MaxSize: MaxCookieSize}
}

// ParseSameSite accepts lax, strict, none and default, case-insensitively.
// Empty means lax.
func ParseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	case "default":
		return http.SameSiteDefaultMode, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSameSite, s)
}

func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	sameSite, err := ParseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}

	var secrets []string
	for _, s := range strings.Split(cfg.Secrets, ",") {
		secrets = append(secrets, strings.TrimSpace(s))
	}

	base := []Option{withHTTPOnly(cfg.HttpOnly), WithSecure(cfg.Secure), WithSameSite(sameSite), WithDomain(cfg.Domain)}
	if cfg.Path != "" {
		base = append(base, withPath(cfg.Path))
	}

	m, err := New(secrets, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if cfg.MaxSize > 0 {
		m.maxSize = cfg.MaxSize
	}
	return m, nil
}
