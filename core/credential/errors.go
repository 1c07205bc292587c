package credential

import "errors"

var (
	// ErrDuplicateUser is returned when the email is already registered.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrPasswordTooLong is returned for passwords beyond bcrypt's 72-byte input limit.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	// ErrHashPassword is returned when hashing fails.
	ErrHashPassword = errors.New("failed to hash password")
)
