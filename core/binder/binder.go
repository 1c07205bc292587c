package binder

import "net/http"

// Binder fills v from the request body. Errors expose StatusCode.
type Binder func(r *http.Request, v any) error
