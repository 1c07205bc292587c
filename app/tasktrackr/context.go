package tasktrackr

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tasktrackr/core/router"
	"github.com/dmitrymomot/tasktrackr/middleware"
)

// Context is the request context handed to tasktrackr handlers.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{Context: router.NewContext(w, r)}
}

// SessionToken returns the caller's session token, or "" when none was sent.
func (c *Context) SessionToken() string {
	token, _ := middleware.GetSessionToken(c)
	return token
}

// UserID returns the authenticated user. Only set behind RequireAuth.
func (c *Context) UserID() uuid.UUID {
	id, _ := middleware.GetUserID(c)
	return id
}
