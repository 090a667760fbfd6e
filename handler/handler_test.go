package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

type addRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Source    string `json:"-" query:"source"`
}

var errOutOfStock = errors.New("shop.out_of_stock")

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var out handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func addHandler(ctx handler.Context, req addRequest) handler.Response {
	switch {
	case req.ProductID == "gone":
		return handler.JSONError(fmt.Errorf("lookup: %w", errOutOfStock))
	case req.ProductID == "nil":
		return nil
	case req.Quantity <= 0:
		return handler.JSONError(validator.Apply(validator.PositiveInt("quantity", req.Quantity)))
	}
	return handler.JSON(req, handler.WithJSONStatus(http.StatusCreated), handler.WithJSONMeta("source", req.Source))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	mapper := func(err error) error {
		if errors.Is(err, errOutOfStock) {
			return handler.ErrConflict.WithMessage("Out of stock.")
		}
		return nil
	}
	h := handler.Wrap(handler.HandlerFunc[handler.Context, addRequest](addHandler),
		handler.WithBinders[handler.Context, addRequest](binder.JSON(), binder.Query()),
		handler.WithErrorHandler[handler.Context, addRequest](handler.NewErrorHandler[handler.Context](nil, mapper)),
	)

	t.Run("binds json and query", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, http.MethodPost, "/cart/items?source=widget", `{"product_id":"1","quantity":2}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		out := decode(t, rec)
		assert.Nil(t, out.Error)
		assert.Equal(t, map[string]any{"product_id": "1", "quantity": float64(2)}, out.Data)
		assert.Equal(t, "widget", out.Meta["source"])
	})

	t.Run("validation errors are 422", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, http.MethodPost, "/cart/items", `{"product_id":"1","quantity":0}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		out := decode(t, rec)
		require.NotNil(t, out.Error)
		assert.Equal(t, "validation_error", out.Error.Code)
		assert.Contains(t, out.Error.Details, "quantity")
	})

	t.Run("bad json is 400", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, http.MethodPost, "/cart/items", `{"product_id":1`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decode(t, rec).Error.Code)
	})

	t.Run("nil response is 500", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, http.MethodPost, "/cart/items", `{"product_id":"nil","quantity":1}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_error", decode(t, rec).Error.Code)
	})

	t.Run("no body skips json binder", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, http.MethodPost, "/cart/items", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
		wantMsg  string
	}{
		{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found", "Not Found"},
		{"wrapped http error", fmt.Errorf("cart: %w", handler.ErrUnauthorized), http.StatusUnauthorized, "unauthorized", "Unauthorized"},
		{"custom message", handler.ErrBadGateway.WithMessage("Catalog is unavailable."), http.StatusBadGateway, "bad_gateway", "Catalog is unavailable."},
		{"unknown error hides details", errors.New("redis: connection refused"), http.StatusInternalServerError, "internal_error", "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.wantCode, rec.Code)
			out := decode(t, rec)
			require.NotNil(t, out.Error)
			assert.Equal(t, tt.wantKey, out.Error.Code)
			assert.Equal(t, tt.wantMsg, out.Error.Message)
		})
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestJSON_ErrorValue(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	require.NoError(t, handler.JSON(handler.ErrConflict).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
