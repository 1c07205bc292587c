// Package redis provides go-redis client initialization with retrying
// connection verification and a readiness check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Only redis:// and rediss:// URLs are accepted. Configuration is read from
// the REDIS_ environment variables through Config.
package redis
