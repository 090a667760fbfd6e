package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/pkg/clientip"
	"github.com/dmitrymomot/storefront/pkg/fingerprint"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// ByIP keys requests by client IP.
func ByIP() KeyFunc {
	return clientip.GetIP
}

// ByFingerprint keys requests by the device fingerprint stored in the request
// context by the fingerprint or keyring middleware.
func ByFingerprint() KeyFunc {
	return func(r *http.Request) string {
		return fingerprint.GetFingerprintFromContext(r.Context())
	}
}

// Composite combines multiple key functions into one.
// Long keys (>64 chars) are hashed using FNV-1a.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			h.Write([]byte(combined))
			return strconv.FormatUint(h.Sum64(), 36)
		}
		return combined
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	limited http.Handler
	log     *slog.Logger
	now     func() time.Time
}

// WithLimitedHandler renders the response for denied requests. Rate limit
// headers are already set when it runs.
func WithLimitedHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.limited = h
		}
	}
}

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Middleware limits requests per key. Requests with an empty key pass. When
// the store fails the request is let through and the failure logged.
func Middleware(b *Bucket, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		limited: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		}),
		log: slog.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := b.Allow(r.Context(), key)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "rate limit check failed",
					logger.Component("ratelimiter"),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				retryAfter := int(result.RetryAfter(cfg.now()).Round(time.Second).Seconds())
				w.Header().Set("Retry-After", strconv.Itoa(max(1, retryAfter)))
				cfg.limited.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
