package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

const maxRequestIDLength = 128

type requestIDOptions struct {
	generate func() string
	trust    bool
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDOptions)

// TrustRequestID reuses a well-formed X-Request-ID sent by the client or a
// proxy instead of minting a new one.
func TrustRequestID() RequestIDOption {
	return func(o *requestIDOptions) { o.trust = true }
}

// WithRequestIDGenerator replaces the UUIDv4 generator.
func WithRequestIDGenerator(fn func() string) RequestIDOption {
	return func(o *requestIDOptions) { o.generate = fn }
}

// RequestID tags every request with an ID, stores it in the context for
// GetRequestID and echoes it in the response.
func RequestID[C handler.Context](opts ...RequestIDOption) handler.Middleware[C] {
	o := requestIDOptions{generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			id := ""
			if o.trust {
				id = ctx.Request().Header.Get(RequestIDHeader)
				if !validRequestID(id) {
					id = ""
				}
			}
			if id == "" {
				id = o.generate()
			}
			ctx.SetValue(requestIDKey{}, id)

			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(RequestIDHeader, id)
				return resp(w, r)
			}
		}
	}
}

// validRequestID accepts short printable ASCII without spaces, so a client
// cannot inject log noise.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID RequestID stored in ctx.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// RequestIDExtractor is a logger.ContextExtractor adding request_id.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := GetRequestID(ctx); ok {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
