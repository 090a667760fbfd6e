package fingerprint

import "net/http"

// Middleware stores the request fingerprint in the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fp := Generate(r, opts...)
			ctx := SetFingerprintToContext(r.Context(), fp)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
