package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tasktrackr/core/logger"
)

// Profile is the authenticated user as returned by GET /me.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Client talks to the tasktrackr API and tracks whether the caller is
// signed in. The session cookie lives in the client's cookie jar. State is
// only ever changed by answers from the server.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger

	resolve singleflight.Group

	mu       sync.RWMutex
	state    State
	profile  Profile
	resolved bool
	section  Section
}

type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. A missing cookie jar is
// added.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log.With(logger.Component("authclient"))
		}
	}
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8081".
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger.Discard(),
		section: DefaultSection,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// State returns the current authentication state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// View returns the screen to render for the current state.
func (c *Client) View() View {
	switch c.State() {
	case Authenticated:
		return ViewShell
	case Anonymous:
		return ViewLogin
	default:
		return ViewNone
	}
}

// Profile returns the signed-in user, if any.
func (c *Client) Profile() (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile, c.state == Authenticated
}

// Section returns the current shell section.
func (c *Client) Section() Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.section
}

// Navigate switches the shell section.
func (c *Client) Navigate(s Section) error {
	if !slices.Contains(Sections, s) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	c.mu.Lock()
	c.section = s
	c.mu.Unlock()
	return nil
}

// Resolve asks the server who the caller is. Only the first call reaches the
// server; concurrent callers share it and later callers get the cached
// answer. A transport failure resolves to Anonymous and is returned.
func (c *Client) Resolve(ctx context.Context) (State, error) {
	c.mu.RLock()
	if c.resolved {
		defer c.mu.RUnlock()
		return c.state, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.resolve.Do("me", func() (any, error) {
		c.mu.RLock()
		if c.resolved {
			defer c.mu.RUnlock()
			return c.state, nil
		}
		c.mu.RUnlock()

		profile, ok, err := c.me(ctx)
		c.settle(profile, ok)
		if err != nil {
			c.logger.WarnContext(ctx, "identity resolution failed", logger.Error(err))
		}
		return c.State(), err
	})

	return v.(State), err
}

// Login signs in. Any failure, whatever the cause, yields ErrLoginFailed and
// leaves the state untouched. On success the identity is re-read from the
// server.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/login", email, password, ErrLoginFailed)
}

// Register creates an account and signs in. Failures yield ErrRegisterFailed.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/register", email, password, ErrRegisterFailed)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string, failure error) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return failure
	}

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", logger.Path(path), logger.Error(err))
		return failure
	}
	drain(resp)
	if resp.StatusCode != http.StatusOK {
		c.logger.DebugContext(ctx, "request rejected", logger.Path(path), logger.StatusCode(resp.StatusCode))
		return failure
	}

	profile, ok, err := c.me(ctx)
	if err != nil || !ok {
		c.logger.DebugContext(ctx, "identity not confirmed after sign-in", logger.Path(path))
		return failure
	}

	c.settle(profile, true)
	c.mu.Lock()
	c.section = DefaultSection
	c.mu.Unlock()
	return nil
}

// Logout revokes the session and waits for the server to confirm before
// switching to Anonymous. If the server cannot be reached the state is left
// as it was and the error returned.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/logout", nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	c.settle(Profile{}, false)
	c.mu.Lock()
	c.section = DefaultSection
	c.mu.Unlock()
	return nil
}

func (c *Client) settle(profile Profile, authenticated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolved = true
	if authenticated {
		c.state = Authenticated
		c.profile = profile
		return
	}
	c.state = Anonymous
	c.profile = Profile{}
}

// me reports the current profile; ok is false for any non-200 answer.
func (c *Client) me(ctx context.Context) (Profile, bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/me", nil)
	if err != nil {
		return Profile{}, false, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		var p Profile
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return Profile{}, false, fmt.Errorf("decode profile: %w", err)
		}
		return p, true, nil
	case http.StatusUnauthorized:
		return Profile{}, false, nil
	default:
		return Profile{}, false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
