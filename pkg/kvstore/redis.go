package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Backend shared between service instances.
type Redis struct {
	db     redis.UniversalClient
	prefix string
}

// NewRedis wraps a connected client. Every key is namespaced with prefix.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{db: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	val, err := r.db.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	return val, nil
}

// Set stores the value. Zero ttl means no expiration.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.db.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.db.Del(ctx, r.prefix+key).Err(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}
