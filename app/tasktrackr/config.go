package tasktrackr

import (
	"time"

	"github.com/dmitrymomot/tasktrackr/core/cookie"
	"github.com/dmitrymomot/tasktrackr/core/credential"
	"github.com/dmitrymomot/tasktrackr/core/server"
	"github.com/dmitrymomot/tasktrackr/core/session"
	"github.com/dmitrymomot/tasktrackr/core/sessiontransport"
	"github.com/dmitrymomot/tasktrackr/integration/database/pg"
	"github.com/dmitrymomot/tasktrackr/integration/database/redis"
	"github.com/dmitrymomot/tasktrackr/middleware"
)

// Storage backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Server        server.Config
	Cookie        cookie.Config
	SessionCookie sessiontransport.CookieConfig
	Session       session.Config
	Credential    credential.Config
	CORS          middleware.CORSEnvConfig
	DB            pg.Config
	Redis         redis.Config
	RateLimit     RateLimitConfig

	AppName         string `env:"APP_NAME" envDefault:"tasktrackr"`
	Env             string `env:"APP_ENV" envDefault:"development"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	CredentialStore string `env:"CREDENTIAL_STORE" envDefault:"memory"`
	SessionStore    string `env:"SESSION_STORE" envDefault:"memory"`
	MaxBodySize     int64  `env:"MAX_BODY_SIZE" envDefault:"65536"`
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// RateLimitConfig throttles POST /register and POST /login per client
// address. A zero Burst disables throttling.
type RateLimitConfig struct {
	Burst          int           `env:"AUTH_RATE_LIMIT_BURST" envDefault:"20"`
	RefillInterval time.Duration `env:"AUTH_RATE_LIMIT_INTERVAL" envDefault:"3s"`
	TrustProxy     bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}
