package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/handler"
)

// JSON writes v as a 200 application/json body.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus writes v with the given status. A zero status means 204 for
// nil and 200 otherwise; 204 and 304 never carry a body.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}

// String writes a 200 text/plain body.
func String(s string) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(s))
		return err
	}
}

// NoContent writes an empty 204.
func NoContent() handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// Error hands err to the router's error handler.
func Error(err error) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}
