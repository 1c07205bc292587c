// Package authclient is the client side of the tasktrackr session boundary.
//
// A Client starts Unresolved and asks the server once, via GET /me, whether
// its cookie jar holds a valid session. Until that answer arrives View
// reports ViewNone so a UI can stay quiet instead of flashing the login
// screen.
//
//	c, err := authclient.New("http://localhost:8081")
//	if err != nil {
//		return err
//	}
//	if _, err := c.Resolve(ctx); err != nil {
//		log.Warn("identity check failed", logger.Error(err))
//	}
//	switch c.View() {
//	case authclient.ViewLogin:
//		err = c.Login(ctx, email, password)
//	case authclient.ViewShell:
//		profile, _ := c.Profile()
//	}
//
// Login and Register make a single request and report any failure as the
// same generic error. Logout waits for the server before the client
// considers itself signed out.
package authclient
