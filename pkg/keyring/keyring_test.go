package keyring_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/fingerprint"
	"github.com/dmitrymomot/storefront/pkg/keyring"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	k, err := keyring.Derive("device-fp")
	require.NoError(t, err)

	assert.True(t, k.HasClientContext())
	assert.NotEqual(t, k.Cart, k.Session)
	assert.NotEqual(t, k.Cart, k.Storage)
	assert.Regexp(t, "^c_[a-f0-9]{16}$", k.CartCookie)

	again, err := keyring.Derive("device-fp")
	require.NoError(t, err)
	assert.Equal(t, k, again)

	other, err := keyring.Derive("other-fp")
	require.NoError(t, err)
	assert.NotEqual(t, k.Cart, other.Cart)
	assert.NotEqual(t, k.CartCookie, other.CartCookie)
}

func TestDerive_NoClientContext(t *testing.T) {
	t.Parallel()

	k, err := keyring.Derive("")
	require.NoError(t, err)
	assert.False(t, k.HasClientContext())
	assert.False(t, k.Cart.IsZero())
}

func TestStorageName(t *testing.T) {
	t.Parallel()

	k, err := keyring.Derive("device-fp")
	require.NoError(t, err)

	assert.Equal(t, k.StorageName("token"), k.StorageName("token"))
	assert.NotEqual(t, k.StorageName("token"), k.StorageName("modal"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got keyring.Keyring
	var fp string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = keyring.MustFromContext(r.Context())
		fp = fingerprint.GetFingerprintFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	keyring.Middleware(nil)(next).ServeHTTP(httptest.NewRecorder(), req)

	want, err := keyring.Derive(fingerprint.Generate(req))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want.Fingerprint, fp)
}

func TestMustFromContext_Panics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { keyring.MustFromContext(context.Background()) })
}
