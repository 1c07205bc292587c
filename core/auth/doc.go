// Package auth ties credentials and sessions together into the operations
// exposed over HTTP: Register, Login, Logout, WhoAmI and RequireAuth.
//
// Client-facing failures are *Error values carrying the HTTP status and the
// exact message shown to users (ErrValidation, ErrInvalidCredentials,
// ErrUnauthenticated, ErrConflict). Any other error is an infrastructure
// failure and should surface as a generic 500.
package auth
