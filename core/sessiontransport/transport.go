package sessiontransport

import (
	"errors"
	"net/http"
)

var (
	ErrNoToken      = errors.New("sessiontransport: no token")
	ErrInvalidToken = errors.New("sessiontransport: invalid token")
)

// Transport carries session tokens between the client and the session
// manager.
type Transport interface {
	// Extract returns the request's token, ErrNoToken when it has none and
	// ErrInvalidToken when the carrier was tampered with.
	Extract(r *http.Request) (string, error)
	// Embed hands a freshly issued token to the client.
	Embed(w http.ResponseWriter, token string) error
	// Clear tells the client to forget its token.
	Clear(w http.ResponseWriter)
}
