package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/tasktrackr/core/handler"
)

// CORSConfig describes which browser origins may call the API.
type CORSConfig struct {
	// AllowOrigins lists exact origins. Empty or containing "*" allows any.
	AllowOrigins []string
	// AllowOriginFunc, when set, replaces AllowOrigins. It returns the value
	// for Access-Control-Allow-Origin.
	AllowOriginFunc func(origin string) (string, bool)

	AllowMethods  []string // default GET, POST, OPTIONS
	AllowHeaders  []string // default Content-Type
	ExposeHeaders []string

	// AllowCredentials lets the browser send the session cookie. It is
	// ignored for wildcard origins.
	AllowCredentials bool
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// CORSEnvConfig is the part of CORSConfig read from the environment.
type CORSEnvConfig struct {
	AllowOrigins     []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"600"`
}

// CORSConfig drops blank origins and exposes the request ID header.
func (c CORSEnvConfig) CORSConfig() CORSConfig {
	var origins []string
	for _, o := range c.AllowOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
		ExposeHeaders:    []string{RequestIDHeader},
	}
}

type corsPolicy struct {
	cfg     CORSConfig
	origins map[string]struct{}
	anyOrig bool
	methods string
	headers string
	exposed string
	maxAge  string
}

func newCORSPolicy(cfg CORSConfig) *corsPolicy {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{"Content-Type"}
	}

	p := &corsPolicy{
		cfg:     cfg,
		origins: make(map[string]struct{}, len(cfg.AllowOrigins)),
		anyOrig: len(cfg.AllowOrigins) == 0,
		methods: strings.Join(cfg.AllowMethods, ", "),
		headers: strings.Join(cfg.AllowHeaders, ", "),
		exposed: strings.Join(cfg.ExposeHeaders, ", "),
	}
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			p.anyOrig = true
		}
		p.origins[o] = struct{}{}
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}
	return p
}

// match returns the Access-Control-Allow-Origin value for origin.
func (p *corsPolicy) match(origin string) (string, bool) {
	if p.cfg.AllowOriginFunc != nil {
		return p.cfg.AllowOriginFunc(origin)
	}
	if p.anyOrig {
		return "*", true
	}
	if _, ok := p.origins[origin]; ok && origin != "" {
		return origin, true
	}
	return "", false
}

func (p *corsPolicy) allowOrigin(h http.Header, allowed string) {
	h.Set("Access-Control-Allow-Origin", allowed)
	if p.cfg.AllowCredentials && allowed != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

func (p *corsPolicy) preflight(allowed string, ok bool, method string) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		h := w.Header()
		h.Add("Vary", "Origin")
		if !ok || !slices.Contains(p.cfg.AllowMethods, method) {
			w.WriteHeader(http.StatusForbidden)
			return nil
		}

		p.allowOrigin(h, allowed)
		h.Set("Access-Control-Allow-Methods", p.methods)
		h.Set("Access-Control-Allow-Headers", p.headers)
		if p.maxAge != "" {
			h.Set("Access-Control-Max-Age", p.maxAge)
		}
		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// CORS allows any origin without credentials. Use it in development only.
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig answers preflights itself, 204 for an allowed origin and
// method and 403 otherwise, so they never reach the router. Other requests
// pass through and get the allow headers only when the origin matches.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	p := newCORSPolicy(cfg)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			req := ctx.Request()
			allowed, ok := p.match(req.Header.Get("Origin"))

			if method := req.Header.Get("Access-Control-Request-Method"); req.Method == http.MethodOptions && method != "" {
				return p.preflight(allowed, ok, method)
			}

			resp := next(ctx)
			if !ok {
				return resp
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				h := w.Header()
				p.allowOrigin(h, allowed)
				if p.exposed != "" {
					h.Set("Access-Control-Expose-Headers", p.exposed)
				}
				h.Add("Vary", "Origin")
				return resp(w, r)
			}
		}
	}
}
