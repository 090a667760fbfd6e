package storefront_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/modules/storefront"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/commerce"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/promo"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/session"
)

type fakeCommerce struct {
	products map[cart.ProductID]commerce.Product
	err      error
}

func (f *fakeCommerce) Product(_ context.Context, id cart.ProductID) (*commerce.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, commerce.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCommerce) SearchProducts(_ context.Context, q commerce.ProductQuery) ([]commerce.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []commerce.Product{}
	for _, p := range f.products {
		if q.Search == "" || p.Name == q.Search {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCommerce) Stores(context.Context) ([]commerce.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []commerce.Store{{ID: "s1", Name: "Central"}}, nil
}

func (f *fakeCommerce) Authenticate(_ context.Context, email, password string) (*commerce.Member, error) {
	if email != "ana@example.com" || password != "secret" {
		return nil, commerce.ErrInvalidCredentials
	}
	return &commerce.Member{
		ID:    "m-1",
		Email: email,
		Name:  "Ana",
		Raw:   json.RawMessage(`{"id":"m-1","email":"ana@example.com","name":"Ana"}`),
	}, nil
}

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func newCatalog() *fakeCommerce {
	return &fakeCommerce{products: map[cart.ProductID]commerce.Product{
		"p1": {ID: "p1", Name: "Green Tea", Price: dec("100"), EVPoint: dec("10")},
	}}
}

type testApp struct {
	server   *httptest.Server
	commerce *fakeCommerce

	mu      sync.Mutex
	mutated []string
}

func (a *testApp) record(op string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mutated = append(a.mutated, op)
}

func (a *testApp) mutations() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.mutated...)
}

func newApp(t *testing.T, extra ...storefront.Option) *testApp {
	t.Helper()
	app := &testApp{commerce: newCatalog()}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cookies := cookie.New()
	sessions := session.New(session.WithLogger(log))
	promos := promo.New(kvstore.NewMemory(100), promo.WithPicker(func(n int) int { return n - 1 }))
	opts := []storefront.Option{
		storefront.WithLogger(log),
		storefront.WithMutationHook(app.record),
	}
	opts = append(opts, extra...)

	r := chi.NewRouter()
	r.Use(storefront.RequestLogger(log), cookies.Middleware, keyring.Middleware(log), sessions.Middleware)
	r.Mount("/", storefront.Router(storefront.RouterOptions{
		Cart:    storefront.NewCartService(app.commerce, nil, opts...),
		Auth:    storefront.NewAuthService(app.commerce, sessions, nil, opts...),
		Catalog: storefront.NewCatalogService(app.commerce, nil, opts...),
		Promo:   storefront.NewPromoService(promos, nil, opts...),
	}))

	app.server = httptest.NewServer(r)
	t.Cleanup(app.server.Close)
	return app
}

type browser struct {
	t      *testing.T
	client *http.Client
	base   string
	agent  string
	// origin is sent on unsafe methods only, as browsers do for same-origin requests.
	origin string
}

func (a *testApp) browser(t *testing.T, agent string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, client: &http.Client{Jar: jar}, base: a.server.URL, agent: agent}
}

type envelope[T any] struct {
	Data  T                    `json:"data"`
	Meta  map[string]any       `json:"meta"`
	Error *handler.ErrorDetail `json:"error"`
}

func do[T any](b *browser, method, path string, body any) (int, envelope[T]) {
	b.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, b.base+path, rd)
	require.NoError(b.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", b.agent)
	if b.origin != "" && method != http.MethodGet {
		req.Header.Set("Origin", b.origin)
	}

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	var env envelope[T]
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(b.t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

var greenTea = map[string]any{"id": "p1", "name": "Green Tea", "price": "100", "evPoint": "10"}

func TestCart_RoundTripAcrossRequests(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0 (X11; Linux x86_64)")

	status, env := do[storefront.CartView](b, http.MethodPost, "/cart/items", map[string]any{
		"product":  greenTea,
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 2, env.Data.Count)
	assert.Contains(t, env.Meta, "notices")

	status, env = do[storefront.CartView](b, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, cart.ProductID("p1"), env.Data.Items[0].ID)
	assert.True(t, decimal.NewFromInt(200).Equal(env.Data.Total))
	assert.True(t, env.Data.EVPointTotal.IsZero())
	assert.NotEmpty(t, env.Data.Formatted.Total)

	status, env = do[storefront.CartView](b, http.MethodPost, "/cart/items/p1/increase", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, env.Data.Count)

	status, env = do[storefront.CartView](b, http.MethodPost, "/cart/items/p1/decrease", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, env.Data.Count)

	status, env = do[storefront.CartView](b, http.MethodDelete, "/cart/items/p1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Data.Items)

	status, env = do[storefront.CartView](b, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Data.Items)

	assert.Equal(t, []string{
		storefront.OpAdd, storefront.OpIncrease, storefront.OpDecrease, storefront.OpRemove,
	}, app.mutations())
}

func TestCart_OtherDeviceCannotReadCart(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0 (X11; Linux x86_64)")

	status, _ := do[storefront.CartView](b, http.MethodPost, "/cart/items", map[string]any{"product": greenTea})
	require.Equal(t, http.StatusOK, status)

	// Same cookies, different browser signals.
	b.agent = "curl/8.4.0"
	status, env := do[storefront.CartView](b, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Data.Items)
}

func TestCart_OriginHeaderOnlyOnWrites(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0 (X11; Linux x86_64)")
	// Proxy-terminated TLS: the browser origin differs from what the server sees.
	b.origin = "https://" + strings.TrimPrefix(app.server.URL, "http://")

	status, _ := do[storefront.CartView](b, http.MethodPost, "/cart/items", map[string]any{
		"product":  greenTea,
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, status)

	status, env := do[storefront.CartView](b, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 2, env.Data.Count)

	b.origin = ""
	status, env = do[storefront.CartView](b, http.MethodPost, "/cart/items/p1/increase", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, env.Data.Count)
}

func TestCart_AddItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCount  int
		wantField  string
	}{
		{"by product id", map[string]any{"product_id": "p1", "quantity": 1}, http.StatusOK, 1, ""},
		{"quantity defaults to one", map[string]any{"product": greenTea}, http.StatusOK, 1, ""},
		{"unknown product id", map[string]any{"product_id": "nope"}, http.StatusNotFound, 0, ""},
		{"zero quantity", map[string]any{"product": greenTea, "quantity": 0}, http.StatusUnprocessableEntity, 0, "quantity"},
		{"negative quantity", map[string]any{"product": greenTea, "quantity": -2}, http.StatusUnprocessableEntity, 0, "quantity"},
		{"quantity above cap", map[string]any{"product": greenTea, "quantity": 1000}, http.StatusUnprocessableEntity, 0, "quantity"},
		{"missing name", map[string]any{"product": map[string]any{"id": "p9", "price": "5"}}, http.StatusUnprocessableEntity, 0, "name"},
		{"no product", map[string]any{"quantity": 1}, http.StatusUnprocessableEntity, 0, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := newApp(t)
			b := app.browser(t, "Mozilla/5.0")

			status, env := do[storefront.CartView](b, http.MethodPost, "/cart/items", tt.body)
			require.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantCount, env.Data.Count)
				return
			}
			require.NotNil(t, env.Error)
			if tt.wantField != "" {
				assert.Contains(t, env.Error.Details, tt.wantField)
			}
		})
	}
}

func TestCart_MissingItem(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0")

	for _, path := range []string{"/cart/items/ghost/increase", "/cart/items/ghost/decrease"} {
		status, env := do[storefront.CartView](b, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		require.NotNil(t, env.Error)
	}
	status, _ := do[storefront.CartView](b, http.MethodDelete, "/cart/items/ghost", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, app.mutations())
}

func TestCart_Clear(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0")

	do[storefront.CartView](b, http.MethodPost, "/cart/items", map[string]any{"product": greenTea, "quantity": 4})
	status, env := do[storefront.CartView](b, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Data.Items)

	_, env = do[storefront.CartView](b, http.MethodGet, "/cart", nil)
	assert.Empty(t, env.Data.Items)
}

func TestAuth_LoginLogoutRecomputesLoyalty(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0")

	do[storefront.CartView](b, http.MethodPost, "/cart/items", map[string]any{"product": greenTea, "quantity": 2})

	status, login := do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", map[string]any{
		"email":       "ana@example.com",
		"password":    "secret",
		"remember_me": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":"m-1","email":"ana@example.com","name":"Ana"}`, string(login.Data.User))
	assert.True(t, login.Data.Cart.Authenticated)
	assert.True(t, decimal.NewFromInt(20).Equal(login.Data.Cart.EVPointTotal))

	status, me := do[storefront.MeResponse](b, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, string(login.Data.User), string(me.Data.User))
	assert.False(t, me.Data.LoginTime.IsZero())

	_, cartEnv := do[storefront.CartView](b, http.MethodGet, "/cart", nil)
	assert.True(t, decimal.NewFromInt(20).Equal(cartEnv.Data.EVPointTotal))

	status, logout := do[storefront.LoginResponse](b, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, logout.Data.Cart.Authenticated)
	assert.True(t, logout.Data.Cart.EVPointTotal.IsZero())
	assert.Len(t, logout.Data.Cart.Items, 1)

	status, _ = do[storefront.MeResponse](b, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_SessionSurvivesGetWithoutOrigin(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0")
	b.origin = "https://shop.example.com"

	status, _ := do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, status)

	for range 2 {
		status, me := do[storefront.MeResponse](b, http.MethodGet, "/auth/me", nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"id":"m-1","email":"ana@example.com","name":"Ana"}`, string(me.Data.User))
	}
}

func TestAuth_LoginFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{"wrong password", map[string]any{"email": "ana@example.com", "password": "nope"}, http.StatusUnauthorized, "unauthorized"},
		{"missing password", map[string]any{"email": "ana@example.com"}, http.StatusUnprocessableEntity, "validation_error"},
		{"bad email", map[string]any{"email": "ana", "password": "secret"}, http.StatusUnprocessableEntity, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := newApp(t)
			b := app.browser(t, "Mozilla/5.0")

			status, env := do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)

			status, _ = do[storefront.MeResponse](b, http.MethodGet, "/auth/me", nil)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestAuth_LoginThrottle(t *testing.T) {
	t.Parallel()

	limited := func(t *testing.T) *testApp {
		t.Helper()
		b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
			Capacity:       2,
			RefillRate:     1,
			RefillInterval: time.Hour,
		})
		require.NoError(t, err)
		return newApp(t, storefront.WithLoginLimit(b))
	}
	wrong := map[string]any{"email": "ana@example.com", "password": "nope"}
	right := map[string]any{"email": "ana@example.com", "password": "secret"}

	t.Run("blocks after capacity", func(t *testing.T) {
		t.Parallel()
		b := limited(t).browser(t, "Mozilla/5.0")

		for range 2 {
			status, _ := do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", wrong)
			require.Equal(t, http.StatusUnauthorized, status)
		}
		status, env := do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", right)
		assert.Equal(t, http.StatusTooManyRequests, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "too_many_requests", env.Error.Code)
	})

	t.Run("successful login resets", func(t *testing.T) {
		t.Parallel()
		b := limited(t).browser(t, "Mozilla/5.0")

		status, _ := do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", wrong)
		require.Equal(t, http.StatusUnauthorized, status)
		status, _ = do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", right)
		require.Equal(t, http.StatusOK, status)

		for range 2 {
			status, _ = do[storefront.LoginResponse](b, http.MethodPost, "/auth/login", wrong)
			assert.Equal(t, http.StatusUnauthorized, status)
		}
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0")

	status, list := do[[]commerce.Product](b, http.MethodGet, "/catalog/products?q=Green+Tea&limit=5", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Data, 1)
	assert.EqualValues(t, 1, list.Meta["count"])

	status, one := do[commerce.Product](b, http.MethodGet, "/catalog/products/p1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Green Tea", one.Data.Name)

	status, _ = do[commerce.Product](b, http.MethodGet, "/catalog/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, stores := do[[]commerce.Store](b, http.MethodGet, "/catalog/stores", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, stores.Data, 1)
}

func TestCatalog_UpstreamFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"circuit open", commerce.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"timeout", commerce.ErrTimeout, http.StatusGatewayTimeout},
		{"exhausted retries", commerce.ErrRequestFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := newApp(t)
			app.commerce.err = tt.err
			b := app.browser(t, "Mozilla/5.0")

			status, env := do[[]commerce.Store](b, http.MethodGet, "/catalog/stores", nil)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, env.Error)
		})
	}
}

func TestPromo(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	b := app.browser(t, "Mozilla/5.0")

	status, state := do[promo.State](b, http.MethodGet, "/promo", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, state.Data.ModalDismissed)
	assert.Nil(t, state.Data.Spin)

	status, state = do[promo.State](b, http.MethodPost, "/promo/modal/dismiss", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, state.Data.ModalDismissed)

	do[storefront.CartView](b, http.MethodPost, "/cart/items", map[string]any{"product": greenTea, "quantity": 2})

	status, spin := do[storefront.SpinResponse](b, http.MethodPost, "/promo/spin", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, spin.Data.Fresh)
	assert.Equal(t, 15, spin.Data.Spin.Percent)
	assert.Equal(t, "SPIN15", spin.Data.Spin.Code)
	assert.True(t, decimal.NewFromInt(200).Equal(spin.Data.CartTotal))
	assert.True(t, decimal.NewFromInt(170).Equal(spin.Data.DiscountedTotal))

	status, again := do[storefront.SpinResponse](b, http.MethodPost, "/promo/spin", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, again.Data.Fresh)
	assert.Equal(t, spin.Data.Spin.Code, again.Data.Spin.Code)

	_, state = do[promo.State](b, http.MethodGet, "/promo", nil)
	require.NotNil(t, state.Data.Spin)
	assert.True(t, state.Data.ModalDismissed)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"item not found", storefront.ErrItemNotFound, http.StatusNotFound},
		{"remote not found", commerce.ErrNotFound, http.StatusNotFound},
		{"credentials", commerce.ErrInvalidCredentials, http.StatusUnauthorized},
		{"circuit", commerce.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"api status", &commerce.APIError{Action: "product", Message: "boom"}, http.StatusBadGateway},
		{"no client key", promo.ErrNoClientKey, http.StatusBadRequest},
		{"cart quantity", cart.ErrInvalidQuantity, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var httpErr handler.HTTPError
			require.ErrorAs(t, storefront.MapError(tt.err), &httpErr)
			assert.Equal(t, tt.want, httpErr.Code)
		})
	}

	assert.Nil(t, storefront.MapError(context.Canceled))
}
