package authclient

import "errors"

var (
	// ErrLoginFailed is returned for any failed login. The message is safe to
	// show and never reveals whether the email exists.
	ErrLoginFailed = errors.New("invalid email or password")
	// ErrRegisterFailed is returned for any failed registration. It carries
	// the same message as ErrLoginFailed.
	ErrRegisterFailed = errors.New("invalid email or password")
	// ErrUnexpectedStatus is returned when the server answers with a status
	// the client does not expect.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrInvalidBaseURL is returned by New for unusable server URLs.
	ErrInvalidBaseURL = errors.New("invalid base URL")
	// ErrUnknownSection is returned when navigating to a section that does not exist.
	ErrUnknownSection = errors.New("unknown section")
)
