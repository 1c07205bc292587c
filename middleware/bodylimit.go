package middleware

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/response"
)

// DefaultBodyLimit applies when BodyLimit gets a non-positive size.
const DefaultBodyLimit int64 = 1 << 20

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused with 413 before the handler runs. Otherwise the body
// reader fails with *http.MaxBytesError once the cap is crossed, which the
// JSON binder turns into 413 as well.
func BodyLimit[C handler.Context](maxBytes int64) handler.Middleware[C] {
	if maxBytes <= 0 {
		maxBytes = DefaultBodyLimit
	}
	tooLarge := response.ErrRequestEntityTooLarge.WithMessage(
		fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", maxBytes))

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			req := ctx.Request()
			if req.ContentLength > maxBytes {
				return response.Error(tooLarge)
			}
			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, maxBytes)
			}
			return next(ctx)
		}
	}
}
