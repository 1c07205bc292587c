// Package sessiontransport carries session tokens over HTTP.
//
// Cookie stores the opaque token from core/session as the value of an
// HMAC-signed cookie (core/cookie), so a forged or edited cookie is rejected
// before any store lookup:
//
//	cookies, _ := cookie.NewFromConfig(cookieCfg)
//	transport := sessiontransport.NewCookieFromConfig(cfg, cookies, sessions.MaxLifetime())
//
//	token, err := transport.Extract(r) // ErrNoToken, ErrInvalidToken
//	err = transport.Embed(w, sess.Token)
//	transport.Clear(w)
//
// The cookie's Max-Age is only a hint to the client; whether a token is still
// usable is decided by the session store.
package sessiontransport
