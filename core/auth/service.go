package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tasktrackr/core/credential"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/core/session"
)

// Credentials is the subset of credential.Store the service depends on.
type Credentials interface {
	Create(ctx context.Context, email, password string) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (credential.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (credential.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	VerifyPassword(user *credential.User, password string) bool
}

// Sessions is the subset of session.Manager the service depends on.
type Sessions interface {
	Issue(ctx context.Context, userID uuid.UUID) (session.Session, error)
	Validate(ctx context.Context, token string) (uuid.UUID, error)
	Revoke(ctx context.Context, token string) error
}

// Identity is the answer to "who is calling". Anonymous callers have
// Authenticated set to false and a zero Profile.
type Identity struct {
	Authenticated bool
	Profile       credential.Profile
}

// Service implements registration, login, logout and identity resolution.
type Service struct {
	creds    Credentials
	sessions Sessions
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log.With(logger.Component("auth"))
		}
	}
}

// NewService creates an auth service.
func NewService(creds Credentials, sessions Sessions, opts ...Option) *Service {
	s := &Service{
		creds:    creds,
		sessions: sessions,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and logs them in. When no session can be issued
// the new user is removed again, so the email stays free for a retry.
func (s *Service) Register(ctx context.Context, email, password string) (session.Session, error) {
	email = credential.NormalizeEmail(email)
	if email == "" || password == "" {
		return session.Session{}, ErrValidation
	}

	userID, err := s.creds.Create(ctx, email, password)
	switch {
	case errors.Is(err, credential.ErrDuplicateUser):
		return session.Session{}, ErrConflict
	case errors.Is(err, credential.ErrPasswordTooLong):
		return session.Session{}, ErrPasswordTooLong
	case err != nil:
		return session.Session{}, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.sessions.Issue(ctx, userID)
	if err != nil {
		if derr := s.creds.Delete(context.WithoutCancel(ctx), userID); derr != nil {
			s.logger.ErrorContext(ctx, "failed to roll back user after session error",
				logger.Event("register_rollback"), logger.UserID(userID), logger.Error(derr))
			err = errors.Join(err, derr)
		}
		return session.Session{}, fmt.Errorf("issue session: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", logger.Event("register"), logger.UserID(userID))
	return sess, nil
}

// Login verifies credentials and issues a session. Unknown emails, wrong
// passwords and empty fields are indistinguishable: same error, and a bcrypt
// comparison is made on every path.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = credential.NormalizeEmail(email)

	var user *credential.User
	if email != "" {
		found, err := s.creds.FindByEmail(ctx, email)
		switch {
		case err == nil:
			user = &found
		case !errors.Is(err, credential.ErrNotFound):
			return session.Session{}, fmt.Errorf("find user: %w", err)
		}
	}

	if !s.creds.VerifyPassword(user, password) || user == nil || password == "" {
		s.logger.InfoContext(ctx, "login failed", logger.Event("login_failed"))
		return session.Session{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return session.Session{}, fmt.Errorf("issue session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", logger.Event("login"), logger.UserID(user.ID))
	return sess, nil
}

// Logout revokes the session behind token. It always succeeds from the
// caller's point of view; store failures are logged.
func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke session", logger.Error(err))
	}
}

// WhoAmI resolves the caller. A missing or invalid token, or a session whose
// user no longer exists, is an anonymous Identity rather than an error; only
// infrastructure failures are returned as errors.
func (s *Service) WhoAmI(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, nil
	}

	userID, err := s.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrInvalid) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("validate session: %w", err)
	}

	user, err := s.creds.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("find user: %w", err)
	}

	return Identity{Authenticated: true, Profile: user.Profile()}, nil
}

// RequireAuth returns the user behind token or ErrUnauthenticated.
func (s *Service) RequireAuth(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrUnauthenticated
	}

	userID, err := s.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrInvalid) {
			return uuid.Nil, ErrUnauthenticated
		}
		return uuid.Nil, fmt.Errorf("validate session: %w", err)
	}
	return userID, nil
}

// Profile returns the public profile of an authenticated user. A user that
// no longer exists yields ErrUnauthenticated, matching WhoAmI.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (credential.Profile, error) {
	user, err := s.creds.FindByID(ctx, userID)
	switch {
	case err == nil:
		return user.Profile(), nil
	case errors.Is(err, credential.ErrNotFound):
		return credential.Profile{}, ErrUnauthenticated
	default:
		return credential.Profile{}, fmt.Errorf("find user: %w", err)
	}
}
