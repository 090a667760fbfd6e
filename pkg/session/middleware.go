package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Middleware loads the session, when there is a valid one, into the request
// context. It must run after the cookie jar and keyring middlewares.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jar, ok := cookie.JarFromContext(r.Context())
		if !ok {
			m.log.ErrorContext(r.Context(), "session middleware misconfigured",
				logger.Component("session"),
				logger.Error(ErrNoCookieJar),
			)
			next.ServeHTTP(w, r)
			return
		}
		keys, ok := keyring.FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.GetSecure(r.Context(), jar, keys)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				m.log.InfoContext(r.Context(), "session rejected",
					logger.Component("session"),
					logger.Error(err),
				)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireAuth rejects requests without a session.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAuthenticated(r.Context()) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
