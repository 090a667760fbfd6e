package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares buckets across replicas using the GCRA limiter from
// redis_rate. Capacity maps to the burst and RefillRate per RefillInterval to
// the sustained rate.
type RedisStore struct {
	limiter *redis_rate.Limiter
	prefix  string
	now     func() time.Time
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		limiter: redis_rate.NewLimiter(client),
		prefix:  prefix + "ratelimit:",
		now:     time.Now,
	}
}

func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	res, err := s.limiter.AllowN(ctx, s.prefix+key, redis_rate.Limit{
		Rate:   config.RefillRate,
		Burst:  config.Capacity,
		Period: config.RefillInterval,
	}, tokens)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	now := s.now()
	if tokens > 0 && res.Allowed < tokens {
		return res.Remaining - tokens, now.Add(res.RetryAfter), nil
	}
	return res.Remaining, now.Add(res.ResetAfter), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.limiter.Reset(ctx, s.prefix+key); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
