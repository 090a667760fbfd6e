// Package ratelimiter provides token bucket rate limiting with in-memory and
// Redis-backed stores, plus an HTTP middleware.
//
// The storefront uses it to throttle login attempts per client IP and device:
//
//	store := ratelimiter.NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	r.With(ratelimiter.Middleware(bucket,
//		ratelimiter.Composite(ratelimiter.ByIP(), ratelimiter.ByFingerprint()),
//	)).Post("/login", login)
//
// A denied request consumes nothing; Result.Remaining is negative and the
// middleware answers with 429 and a Retry-After header. MemoryStore needs its
// Janitor running to drop idle buckets. RedisStore shares limits across
// replicas.
package ratelimiter
