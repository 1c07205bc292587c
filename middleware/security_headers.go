package middleware

import (
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/handler"
)

// APIHeaders returns the headers every JSON response of the API carries. The
// API is read by a browser SPA from another origin and is never framed or
// cached.
func APIHeaders() http.Header {
	return http.Header{
		"X-Content-Type-Options":       {"nosniff"},
		"X-Frame-Options":              {"DENY"},
		"Referrer-Policy":              {"no-referrer"},
		"Cross-Origin-Resource-Policy": {"same-site"},
		"Cache-Control":                {"no-store"},
	}
}

// SecurityHeaders sets headers on every response before the handler writes.
// Values set by the handler itself win. With no argument APIHeaders is used.
func SecurityHeaders[C handler.Context](headers ...http.Header) handler.Middleware[C] {
	set := http.Header{}
	if len(headers) == 0 {
		headers = []http.Header{APIHeaders()}
	}
	for _, h := range headers {
		for k, v := range h {
			set[http.CanonicalHeaderKey(k)] = v
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				dst := w.Header()
				for k, v := range set {
					dst[k] = append([]string(nil), v...)
				}
				return resp(w, r)
			}
		}
	}
}
