package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/tasktrackr/core/logger"
)

var (
	ErrMissingAddress = errors.New("server address is required")
	ErrAlreadyRunning = errors.New("server is already running")
	ErrListen         = errors.New("failed to bind listener")
	ErrServe          = errors.New("http server failed")
	ErrShutdown       = errors.New("graceful shutdown failed")
	ErrLoadTLS        = errors.New("failed to load TLS key pair")
)

// Server runs one http.Server at a time and shuts it down gracefully when
// its context ends.
type Server struct {
	cfg    Config
	tls    *tls.Config
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	running  bool
}

type Option func(*Server)

func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.logger = log
		}
	}
}

// New validates cfg and loads the TLS key pair if one is configured.
// Zero durations fall back to DefaultConfig.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	def := DefaultConfig()
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = def.ReadHeaderTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.MaxHeaderBytes <= 0 {
		cfg.MaxHeaderBytes = def.MaxHeaderBytes
	}

	tlsCfg, err := cfg.tlsConfig()
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, tls: tlsCfg, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Addr returns the bound address while running, the configured one otherwise.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Run returns an errgroup-compatible function that serves h until ctx is
// cancelled, then drains in-flight requests for up to ShutdownTimeout.
// Bind failures are returned immediately; a clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		ln, err := s.listen()
		if err != nil {
			return err
		}
		defer s.release()

		srv := &http.Server{
			Handler:           h,
			ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
			ReadTimeout:       s.cfg.ReadTimeout,
			WriteTimeout:      s.cfg.WriteTimeout,
			IdleTimeout:       s.cfg.IdleTimeout,
			MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
			BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
			ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
		}

		serveErr := make(chan error, 1)
		go func() {
			s.logger.InfoContext(ctx, "http server listening",
				logger.Component("server"), slog.String("addr", ln.Addr().String()), slog.Bool("tls", s.tls != nil))
			serveErr <- srv.Serve(ln)
		}()

		select {
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errors.Join(ErrServe, err)
		case <-ctx.Done():
		}

		s.logger.Info("http server shutting down",
			logger.Component("server"), logger.Duration(s.cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown failed", logger.Component("server"), logger.Error(err))
			return errors.Join(ErrShutdown, err)
		}
		<-serveErr

		s.logger.Info("http server stopped", logger.Component("server"))
		return nil
	}
}

func (s *Server) listen() (net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, errors.Join(ErrListen, err)
	}
	if s.tls != nil {
		ln = tls.NewListener(ln, s.tls)
	}

	s.listener = ln
	s.running = true
	return ln, nil
}

func (s *Server) release() {
	s.mu.Lock()
	s.listener = nil
	s.running = false
	s.mu.Unlock()
}
