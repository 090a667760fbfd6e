package keyring

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/fingerprint"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

type keyringContextKey struct{}

// WithContext stores the keyring in the context.
func WithContext(ctx context.Context, k Keyring) context.Context {
	return context.WithValue(ctx, keyringContextKey{}, k)
}

// FromContext returns the keyring stored by Middleware.
func FromContext(ctx context.Context) (Keyring, bool) {
	k, ok := ctx.Value(keyringContextKey{}).(Keyring)
	return k, ok
}

// MustFromContext is FromContext for handlers mounted behind Middleware.
func MustFromContext(ctx context.Context) Keyring {
	k, ok := FromContext(ctx)
	if !ok {
		panic(ErrNotInContext)
	}
	return k
}

// Middleware fingerprints the request, derives the keyring once and stores both
// in the request context.
func Middleware(log *slog.Logger, opts ...fingerprint.Option) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fp := fingerprint.Generate(r, opts...)
			k, err := Derive(fp)
			if err != nil {
				log.ErrorContext(r.Context(), "derive device keys",
					logger.Error(err),
					logger.Component("keyring"),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := fingerprint.SetFingerprintToContext(r.Context(), fp)
			ctx = WithContext(ctx, k)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
