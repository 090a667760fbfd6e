package token

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/pkg/kvstore"
)

type Option func(*Service)

// WithTTL bounds how long a fetched token is reused. Zero keeps it until
// Invalidate is called.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithCache persists fetched tokens in the vault so a restarted instance, or
// another instance sharing the backend, can reuse them.
func WithCache(v *kvstore.Vault) Option {
	return func(s *Service) { s.vault = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFetchHook registers a callback run after every remote fetch.
func WithFetchHook(fn func(err error, took time.Duration)) Option {
	return func(s *Service) { s.onFetch = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}
