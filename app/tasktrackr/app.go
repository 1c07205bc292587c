package tasktrackr

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tasktrackr/core/auth"
	"github.com/dmitrymomot/tasktrackr/core/cookie"
	"github.com/dmitrymomot/tasktrackr/core/credential"
	"github.com/dmitrymomot/tasktrackr/core/health"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/core/router"
	"github.com/dmitrymomot/tasktrackr/core/server"
	"github.com/dmitrymomot/tasktrackr/core/session"
	"github.com/dmitrymomot/tasktrackr/core/sessiontransport"
	"github.com/dmitrymomot/tasktrackr/pkg/ratelimiter"
)

// App wires the credential store, session manager and auth service behind
// the HTTP API.
type App struct {
	config    Config
	logger    *slog.Logger
	router    router.Router[*Context]
	server    *server.Server
	transport sessiontransport.Transport
	users     credential.Repository
	store     session.Store
	sessions  *session.Manager
	auth      *auth.Service
	checks    []health.Check
	attempts  *ratelimiter.MemoryStore
	limiter   *ratelimiter.Bucket
}

type Option func(*App) error

// New builds the app. Stores default to the in-memory implementations.
func New(cfg Config, opts ...Option) (*App, error) {
	app := &App{
		config: cfg,
		logger: logger.Discard(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.users == nil {
		app.users = credential.NewMemoryRepository()
	}
	if app.store == nil {
		app.store = session.NewMemoryStore()
	}

	app.sessions = session.NewManager(app.store,
		session.WithConfig(cfg.Session),
		session.WithLogger(app.logger),
	)

	app.auth = auth.NewService(
		credential.NewStore(app.users, credential.WithBcryptCost(cfg.Credential.BcryptCost)),
		app.sessions,
		auth.WithLogger(app.logger),
	)

	if app.transport == nil {
		cookieCfg := cfg.Cookie
		if cookieCfg.Secrets == "" {
			if cfg.IsProduction() {
				return nil, ErrNoCookieKey
			}
			secret, err := ephemeralSecret()
			if err != nil {
				return nil, err
			}
			cookieCfg.Secrets = secret
			app.logger.Warn("COOKIE_SECRETS is not set, sessions will not survive a restart",
				logger.Component("app"))
		}

		cookies, err := cookie.NewFromConfig(cookieCfg)
		if err != nil {
			return nil, fmt.Errorf("cookie manager: %w", err)
		}
		app.transport = sessiontransport.NewCookieFromConfig(cfg.SessionCookie, cookies, app.sessions.MaxLifetime())
	}

	if app.server == nil {
		s, err := server.New(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	if cfg.RateLimit.Burst > 0 {
		app.attempts = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(app.logger))
		limiter, err := ratelimiter.NewBucket(app.attempts, ratelimiter.Config{
			Capacity:       cfg.RateLimit.Burst,
			RefillRate:     1,
			RefillInterval: cfg.RateLimit.RefillInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("auth rate limiter: %w", err)
		}
		app.limiter = limiter
	}

	app.router = app.routes()

	return app, nil
}

// Handler returns the HTTP handler serving the API.
func (a *App) Handler() http.Handler {
	return a.router
}

// Auth returns the auth service.
func (a *App) Auth() *auth.Service {
	return a.auth
}

// Addr returns the server address, the bound one once running.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Run serves HTTP and sweeps expired sessions until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	g.Go(a.sessions.Janitor(ctx, a.config.Session.CleanupInterval))
	if a.attempts != nil {
		g.Go(func() error { return a.attempts.Run(ctx) })
	}
	return g.Wait()
}

func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cookie secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func WithLogger(log *slog.Logger) Option {
	return func(app *App) error {
		if log == nil {
			return fmt.Errorf("%w: logger", ErrNilOption)
		}
		app.logger = log
		return nil
	}
}

// WithCredentialRepository replaces the in-memory user repository.
func WithCredentialRepository(repo credential.Repository) Option {
	return func(app *App) error {
		if repo == nil {
			return fmt.Errorf("%w: credential repository", ErrNilOption)
		}
		app.users = repo
		return nil
	}
}

// WithSessionStore replaces the in-memory session store.
func WithSessionStore(store session.Store) Option {
	return func(app *App) error {
		if store == nil {
			return fmt.Errorf("%w: session store", ErrNilOption)
		}
		app.store = store
		return nil
	}
}

// WithTransport replaces the cookie transport built from config.
func WithTransport(t sessiontransport.Transport) Option {
	return func(app *App) error {
		if t == nil {
			return fmt.Errorf("%w: transport", ErrNilOption)
		}
		app.transport = t
		return nil
	}
}

// WithReadinessChecks adds dependency checks to GET /ready.
func WithReadinessChecks(checks ...health.Check) Option {
	return func(app *App) error {
		app.checks = append(app.checks, checks...)
		return nil
	}
}
