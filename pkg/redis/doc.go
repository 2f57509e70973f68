// Package redis opens the optional go-redis client that backs the shared
// dashboard stats cache. When REDIS_URL is empty the service runs with an
// in-process cache instead.
//
//	if cfg.Redis.Enabled() {
//	    client, err := redis.Open(ctx, cfg.Redis, log)
//	    ...
//	}
package redis
