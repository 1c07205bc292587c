package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/response"
	"github.com/dmitrymomot/tasktrackr/core/router"
)

type ctx = *router.Context

func newRouter(mws ...handler.Middleware[ctx]) router.Router[ctx] {
	r := router.New[ctx](router.WithErrorHandler(response.JSONErrorHandler[ctx]))
	r.Use(mws...)
	return r
}

func ok(ctx) handler.Response {
	return response.String("ok")
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
