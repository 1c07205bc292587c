package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSON creates a binder that decodes a single JSON value from the request
// body. A missing Content-Type is accepted; any media type other than
// application/json is rejected. Unknown fields are ignored and trailing data
// after the value is an error. String fields are left exactly as sent.
func JSON() Binder {
	return JSONWithLimit(DefaultMaxJSONSize)
}

// JSONWithLimit is JSON with a custom body size limit.
func JSONWithLimit(maxSize int64) Binder {
	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return ErrUnsupportedMediaType
			}
		}

		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}

		body := &countingReader{r: io.LimitReader(r.Body, maxSize+1)}
		decoder := json.NewDecoder(body)
		if err := decoder.Decode(v); err != nil {
			return decodeError(err, body.n > maxSize)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			if err != nil {
				return decodeError(err, body.n > maxSize)
			}
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}

		return nil
	}
}

func decodeError(err error, overLimit bool) error {
	var maxErr *http.MaxBytesError
	switch {
	case overLimit, errors.As(err, &maxErr):
		return fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	default:
		return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
