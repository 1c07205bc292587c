// Package session issues and validates opaque session tokens.
//
// A token is 32 random bytes encoded as unpadded base64url. Only its SHA-256
// hash is stored, so a leaked store cannot be replayed as cookies. The plain
// token is returned once by Issue and then travels with the client.
//
//	store := session.NewMemoryStore()
//	mgr := session.NewManager(store,
//		session.WithConfig(cfg),
//		session.WithLogger(log),
//	)
//
//	sess, err := mgr.Issue(ctx, userID)   // sess.Token goes into the cookie
//	userID, err := mgr.Validate(ctx, tok) // ErrInvalid for anything unusable
//	err = mgr.Revoke(ctx, tok)            // idempotent
//
//	g.Go(mgr.Janitor(ctx, 0))             // periodic sweep for MemoryStore
//
// # Expiry
//
// Sessions expire after TTL of inactivity. Activity is recorded at most once
// per TouchInterval to limit store writes, and a session never outlives
// CreatedAt+MaxLifetime regardless of activity. The expiry held by the store
// is authoritative; clients only receive MaxLifetime as a cookie lifetime.
//
// # Revocation
//
// Store.Touch only updates existing records. Once Revoke returns, a
// concurrent or later Validate of the same token yields ErrInvalid.
//
// A Redis-backed Store lives in integration/sessionstore/redis.
package session
