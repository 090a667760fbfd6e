package kvstore

import (
	"context"
	"time"
)

// Backend is a byte-oriented key-value store with optional expiry.
// Get returns ErrNotFound for missing or expired keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
