// Package response provides HTTP response builders for handlers: JSON and
// plain text bodies, empty status responses, and structured HTTP errors.
//
// Handlers return errors through Error; the router passes them to an error
// handler such as JSONErrorHandler, which maps them to an HTTPError. Errors
// that implement StatusCode() int keep their status, everything else becomes
// a 500 with a generic message. StatusError builds the value for any status:
//
//	return response.Error(response.ErrConflict.WithMessage("User already exists"))
//	// 409 {"code":"conflict","error":"User already exists"}
package response
