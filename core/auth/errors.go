package auth

import "net/http"

// Error is a client-facing authentication error. Its message is safe to show
// to users and its status code drives the HTTP mapping.
type Error struct {
	status int
	msg    string
}

func (e *Error) Error() string   { return e.msg }
func (e *Error) StatusCode() int { return e.status }

var (
	// ErrValidation is returned when email or password is missing.
	ErrValidation = &Error{status: http.StatusBadRequest, msg: "Email and password required"}
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's input limit.
	ErrPasswordTooLong = &Error{status: http.StatusBadRequest, msg: "Password must be at most 72 bytes"}
	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = &Error{status: http.StatusUnauthorized, msg: "Invalid credentials"}
	// ErrUnauthenticated is returned when a request carries no valid session.
	ErrUnauthenticated = &Error{status: http.StatusUnauthorized, msg: "Not authenticated"}
	// ErrConflict is returned when registering an email that already exists.
	ErrConflict = &Error{status: http.StatusConflict, msg: "User already exists"}
)
