package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/router"
)

func TestWriter_ErrorAfterWriteIsNotDoubleWritten(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/partial", func(*router.Context) handler.Response {
		return func(w http.ResponseWriter, _ *http.Request) error {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("partial"))
			return assert.AnError
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestWriter_PanicAfterWriteKeepsResponse(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/late-panic", func(*router.Context) handler.Response {
		return func(w http.ResponseWriter, _ *http.Request) error {
			_, _ = w.Write([]byte("ok"))
			panic("late")
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late-panic", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
