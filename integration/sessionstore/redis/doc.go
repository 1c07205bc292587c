// Package redis implements session.Store on Redis.
//
// Sessions are stored as JSON under "<prefix><token hash>" with a Redis
// expiry equal to the session's ExpiresAt. Create uses SET NX and Touch uses
// SET XX, so a revoked session is never brought back by a concurrent touch.
//
//	client, err := redisdb.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	manager := session.NewManager(redis.New(client))
package redis
