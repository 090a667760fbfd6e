package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/fingerprint"
	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/session"
)

func chain(mgr *session.Manager, h http.Handler) http.Handler {
	return cookie.New().Middleware(keyring.Middleware(nil)(mgr.Middleware(h)))
}

// loginCookies creates a session for the device that sends req and returns the
// resulting Cookie header.
func loginCookies(t *testing.T, mgr *session.Manager, req *http.Request) string {
	t.Helper()
	keys := keysFor(t, fingerprint.Generate(req))
	store := cookie.NewMemoryStore()
	_, err := mgr.SetSecure(context.Background(), store, keys, user{ID: 42}, true)
	require.NoError(t, err)

	ref, _ := store.Get(mgr.ReferenceCookie())
	payload, _ := store.Get(ref)
	return mgr.ReferenceCookie() + "=" + ref + "; " + ref + "=" + payload
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	mgr := session.New()

	var authed bool
	var sess *session.Session
	h := chain(mgr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = session.IsAuthenticated(r.Context())
		sess, _ = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, authed)
	assert.Nil(t, sess)

	req.Header.Set("Cookie", loginCookies(t, mgr, req))
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, authed)
	var u user
	require.NoError(t, sess.DecodeUser(&u))
	assert.Equal(t, 42, u.ID)
}

func TestMiddleware_OtherDevice(t *testing.T) {
	t.Parallel()
	mgr := session.New()

	var authed bool
	h := chain(mgr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = session.IsAuthenticated(r.Context())
	}))

	original := httptest.NewRequest(http.MethodGet, "/", nil)
	original.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh)")

	stolen := httptest.NewRequest(http.MethodGet, "/", nil)
	stolen.Header.Set("User-Agent", "curl/8.0")
	stolen.Header.Set("Cookie", loginCookies(t, mgr, original))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, stolen)
	assert.False(t, authed)

	deleted := 0
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			deleted++
		}
	}
	assert.Equal(t, 2, deleted, "both session cookies are expired")
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	mgr := session.New()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := chain(mgr, mgr.RequireAuth(ok))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Cookie", loginCookies(t, mgr, req))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFromContext_Empty(t *testing.T) {
	t.Parallel()
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)
	assert.False(t, session.IsAuthenticated(context.Background()))
}
