package tasktrackr

import (
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/binder"
	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/response"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type successResponse struct {
	Success bool `json:"success"`
}

var bindJSON = binder.JSON()

func (a *App) register(ctx *Context) handler.Response {
	var req credentialsRequest
	if err := bindJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}

	sess, err := a.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return response.Error(err)
	}

	return a.withSession(sess.Token, response.JSON(successResponse{Success: true}))
}

func (a *App) login(ctx *Context) handler.Response {
	var req credentialsRequest
	if err := bindJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}

	sess, err := a.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return response.Error(err)
	}

	return a.withSession(sess.Token, response.JSON(successResponse{Success: true}))
}

// logout always succeeds, with or without a session.
func (a *App) logout(ctx *Context) handler.Response {
	a.auth.Logout(ctx, ctx.SessionToken())

	next := response.JSON(successResponse{Success: true})
	return func(w http.ResponseWriter, r *http.Request) error {
		a.transport.Clear(w)
		return next(w, r)
	}
}

func (a *App) me(ctx *Context) handler.Response {
	profile, err := a.auth.Profile(ctx, ctx.UserID())
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(profile)
}

// withSession hands the token to the client before writing next.
func (a *App) withSession(token string, next handler.Response) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := a.transport.Embed(w, token); err != nil {
			return err
		}
		return next(w, r)
	}
}
