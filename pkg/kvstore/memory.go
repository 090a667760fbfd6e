package kvstore

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

// Memory is a process-local Backend on top of an expiring LRU cache.
type Memory struct {
	lru *cache.LRUCache[string, []byte]
}

// NewMemory returns a Memory backend holding at most capacity keys.
func NewMemory(capacity int) *Memory {
	return &Memory{lru: cache.NewLRUCache[string, []byte](capacity)}
}

// SetClock replaces the time source used for expiry.
func (m *Memory) SetClock(now func() time.Time) {
	m.lru.SetClock(now)
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.lru.PutWithTTL(key, slices.Clone(value), ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.lru.Remove(key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int { return m.lru.Len() }

// Janitor purges expired keys every interval until ctx is done. It returns
// nil on cancellation so it can run inside an errgroup.
func (m *Memory) Janitor(interval time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				m.lru.Purge()
			}
		}
	}
}
