// Package redis connects the storefront to Redis, the shared backend of the
// key-value store (see pkg/kvstore) when the service runs as several
// instances.
//
// Config is populated from the environment (REDIS_URL, REDIS_KEY_PREFIX,
// REDIS_POOL_SIZE, REDIS_RETRY_*). An empty REDIS_URL means Redis is disabled and callers fall
// back to the in-memory backend.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	backend := kvstore.NewRedis(client, cfg.KeyPrefix)
//
// Healthcheck adapts a client to the /health probe.
package redis
