package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/core/response"
	"github.com/dmitrymomot/tasktrackr/pkg/clientip"
)

// LoggingConfig configures the access log.
type LoggingConfig struct {
	Skip   func(ctx handler.Context) bool
	Logger *slog.Logger // default slog.Default()
	// SlowThreshold marks a successful request slow and logs it at WARN.
	// Default 2s.
	SlowThreshold time.Duration
}

// LoggingWithLogger writes the access log to log.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig writes one record per request once the response is
// done: INFO for 2xx and 3xx, WARN for 4xx and slow requests, ERROR for 5xx
// with the cause attached. Headers and bodies are never logged, so session
// cookies and passwords stay out of the log.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = 2 * time.Second
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rw := &recordingWriter{ResponseWriter: w}
				err := resp(rw, r)
				elapsed := time.Since(start)

				status := rw.status
				switch {
				case err != nil && status == 0:
					// Still unwritten: the router's error handler renders it next.
					status = response.AsHTTPError(err).Status
				case status == 0:
					status = http.StatusOK
				}

				attrs := []slog.Attr{
					logger.Component("http"),
					logger.Event("request"),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.ClientIP(clientip.RemoteIP(r)),
					slog.Int("bytes_out", rw.written),
					logger.Latency(elapsed),
				}

				level := slog.LevelInfo
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					if err != nil {
						attrs = append(attrs, logger.Error(err))
					}
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case elapsed > cfg.SlowThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

// recordingWriter remembers the status and byte count of a response.
type recordingWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *recordingWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

func (w *recordingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
