package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/core/response"
	"github.com/dmitrymomot/tasktrackr/core/sessiontransport"
)

type sessionTokenKey struct{}

type userIDKey struct{}

// TokenExtractor reads a session token from a request.
// sessiontransport.Cookie satisfies it.
type TokenExtractor interface {
	Extract(r *http.Request) (string, error)
}

// Authenticator resolves a session token to a user id.
// auth.Service satisfies it.
type Authenticator interface {
	RequireAuth(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Transport extracts the token from the request
	Transport TokenExtractor
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// Session creates middleware that extracts the session token and stores it
// in the request context. A missing or tampered token leaves the request
// anonymous; it is never an error here.
func Session[C handler.Context](transport TokenExtractor) handler.Middleware[C] {
	return SessionWithConfig[C](SessionConfig{Transport: transport})
}

// SessionWithConfig creates session middleware with custom configuration.
func SessionWithConfig[C handler.Context](cfg SessionConfig) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("middleware: session transport is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			token, err := cfg.Transport.Extract(ctx.Request())
			switch {
			case err == nil:
				ctx.SetValue(sessionTokenKey{}, token)
			case !errors.Is(err, sessiontransport.ErrNoToken):
				cfg.Logger.DebugContext(ctx, "session token rejected", logger.Error(err))
			}

			return next(ctx)
		}
	}
}

// GetSessionToken returns the token stored by the Session middleware.
func GetSessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenKey{}).(string)
	return token, ok && token != ""
}

// RequireAuth rejects requests without a valid session. The guard's error is
// passed to the error handler unchanged, so every protected route fails with
// the same status and body. On success the user id is stored in the context.
func RequireAuth[C handler.Context](guard Authenticator) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			token, _ := GetSessionToken(ctx)

			userID, err := guard.RequireAuth(ctx, token)
			if err != nil {
				return response.Error(err)
			}

			ctx.SetValue(userIDKey{}, userID)
			return next(ctx)
		}
	}
}

// GetUserID returns the user id stored by RequireAuth.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}
