package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tasktrackr/core/cookie"
	"github.com/dmitrymomot/tasktrackr/core/sessiontransport"
)

const secret = "test-secret-key-32-characters!!!"

func newTransport(t *testing.T) *sessiontransport.Cookie {
	t.Helper()
	cookies, err := cookie.New([]string{secret})
	require.NoError(t, err)
	return sessiontransport.NewCookieFromConfig(sessiontransport.DefaultCookieConfig(), cookies, time.Hour)
}

func TestCookie_EmbedExtract(t *testing.T) {
	t.Parallel()

	tr := newTransport(t)
	var _ sessiontransport.Transport = tr

	w := httptest.NewRecorder()
	require.NoError(t, tr.Embed(w, "opaque-token"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tasktrackr_session", cookies[0].Name)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
	assert.NotContains(t, cookies[0].Value, "opaque-token", "value is encoded and signed")

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.AddCookie(cookies[0])
	token, err := tr.Extract(r)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)
}

func TestCookie_ExtractErrors(t *testing.T) {
	t.Parallel()

	tr := newTransport(t)

	_, err := tr.Extract(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, sessiontransport.ErrNoToken)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "tasktrackr_session", Value: "forged.value"})
	_, err = tr.Extract(r)
	assert.ErrorIs(t, err, sessiontransport.ErrInvalidToken)

	other, err := cookie.New([]string{"another-secret-key-32-chars!!!!!"})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, other.SetSigned(w, "tasktrackr_session", "tok"))
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	_, err = tr.Extract(r)
	assert.ErrorIs(t, err, sessiontransport.ErrInvalidToken)
}

func TestCookie_Clear(t *testing.T) {
	t.Parallel()

	tr := newTransport(t)
	w := httptest.NewRecorder()
	tr.Clear(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tasktrackr_session", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
