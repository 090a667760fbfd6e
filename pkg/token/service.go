package token

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/async"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

const vaultName = "api_token"

// FetchFunc obtains a fresh bearer token from the remote API.
type FetchFunc func(ctx context.Context) (string, error)

// Service hands out the API bearer token. At most one fetch is outstanding at
// any time: callers arriving while a fetch is in flight wait for the same
// result, including its error.
type Service struct {
	fetch FetchFunc
	ttl   time.Duration
	vault *kvstore.Vault
	log   *slog.Logger
	now   func() time.Time

	onFetch func(err error, took time.Duration)

	mu       sync.Mutex
	cached   string
	cachedAt time.Time
	inflight *async.Future[string]
}

func New(fetch FetchFunc, opts ...Option) *Service {
	s := &Service{
		fetch: fetch,
		ttl:   30 * time.Minute,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the cached token or waits for the shared fetch. The fetch
// itself runs detached from ctx, so one caller giving up does not fail the
// others; ctx only bounds this caller's wait.
func (s *Service) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.fresh() {
		tok := s.cached
		s.mu.Unlock()
		return tok, nil
	}
	if s.inflight == nil {
		s.inflight = async.Async(context.WithoutCancel(ctx), struct{}{}, s.acquire)
	}
	f := s.inflight
	s.mu.Unlock()

	return f.AwaitContext(ctx)
}

// Invalidate drops the cached token, e.g. after the API rejected it.
// An in-flight fetch is not affected.
func (s *Service) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.cached = ""
	s.cachedAt = time.Time{}
	s.mu.Unlock()

	if s.vault != nil {
		if err := s.vault.Remove(ctx, vaultName); err != nil {
			s.log.WarnContext(ctx, "drop cached api token",
				logger.Component("token"),
				logger.Error(err),
			)
		}
	}
}

// fresh must be called with the lock held.
func (s *Service) fresh() bool {
	if s.cached == "" {
		return false
	}
	return s.ttl <= 0 || s.now().Sub(s.cachedAt) < s.ttl
}

func (s *Service) acquire(ctx context.Context, _ struct{}) (tok string, err error) {
	defer func() {
		s.mu.Lock()
		if err == nil {
			s.cached, s.cachedAt = tok, s.now()
		}
		s.inflight = nil
		s.mu.Unlock()
	}()

	if tok, ok := s.fromVault(ctx); ok {
		return tok, nil
	}

	start := s.now()
	tok, err = s.fetch(ctx)
	if err == nil && tok == "" {
		err = ErrEmptyToken
	}
	if s.onFetch != nil {
		s.onFetch(err, s.now().Sub(start))
	}
	if err != nil {
		s.log.ErrorContext(ctx, "api token fetch failed",
			logger.Component("token"),
			logger.Error(err),
		)
		return "", errors.Join(ErrFetchFailed, err)
	}

	if s.vault != nil {
		if err := s.vault.Put(ctx, vaultName, tok, s.ttl); err != nil {
			s.log.WarnContext(ctx, "cache api token",
				logger.Component("token"),
				logger.Error(err),
			)
		}
	}
	return tok, nil
}

func (s *Service) fromVault(ctx context.Context) (string, bool) {
	if s.vault == nil {
		return "", false
	}
	var tok string
	if _, err := s.vault.Fetch(ctx, vaultName, &tok, s.ttl); err != nil || tok == "" {
		return "", false
	}
	return tok, true
}
