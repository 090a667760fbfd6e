package cookie

import (
	"context"
	"net/http"
)

type jarContextKey struct{}

// WithJar stores a request-scoped jar in the context.
func WithJar(ctx context.Context, j *Jar) context.Context {
	return context.WithValue(ctx, jarContextKey{}, j)
}

// JarFromContext returns the jar installed by Middleware.
func JarFromContext(ctx context.Context) (*Jar, bool) {
	j, ok := ctx.Value(jarContextKey{}).(*Jar)
	return j, ok
}

// Middleware installs one Jar per request so every store touched by the
// request shares the same view of pending cookie writes.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jar := NewJar(m, w, r)
		next.ServeHTTP(w, r.WithContext(WithJar(r.Context(), jar)))
	})
}
