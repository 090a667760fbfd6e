package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/binder"
)

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()
	bind := binder.JSON()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		err := bind(jsonRequest(`{"email":"a@b.co","password":"x","remember_me":true}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)
		assert.Equal(t, loginRequest{Email: "a@b.co", Password: "x", RememberMe: true}, req)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     error
	}{
		{"missing content type", `{}`, "", binder.ErrMissingContentType},
		{"form content type", `email=a`, "application/x-www-form-urlencoded", binder.ErrUnsupportedMediaType},
		{"unknown field", `{"email":"a","admin":true}`, "application/json", binder.ErrFailedToParseJSON},
		{"wrong type", `{"remember_me":"yes"}`, "application/json", binder.ErrFailedToParseJSON},
		{"truncated", `{"email":`, "application/json", binder.ErrFailedToParseJSON},
		{"trailing data", `{"email":"a"}{"email":"b"}`, "application/json", binder.ErrFailedToParseJSON},
		{"too large", `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, "application/json", binder.ErrBodyTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req loginRequest
			assert.ErrorIs(t, bind(jsonRequest(tt.body, tt.contentType), &req), tt.wantErr)
		})
	}

	t.Run("no body is not applicable", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		r := httptest.NewRequest(http.MethodDelete, "/cart", nil)
		assert.ErrorIs(t, bind(r, &req), binder.ErrBinderNotApplicable)
	})
}

type searchRequest struct {
	Search string   `query:"q"`
	Limit  int      `query:"limit"`
	Fields []string `query:"fields"`
	Page   *int     `query:"page"`
	Body   string   `json:"body"`
}

func TestQuery(t *testing.T) {
	t.Parallel()
	bind := binder.Query()

	var req searchRequest
	r := httptest.NewRequest(http.MethodGet, "/catalog/products?q=kopi&limit=5&fields=id,name&page=2&body=ignored", nil)
	require.NoError(t, bind(r, &req))

	assert.Equal(t, "kopi", req.Search)
	assert.Equal(t, 5, req.Limit)
	assert.Equal(t, []string{"id", "name"}, req.Fields)
	require.NotNil(t, req.Page)
	assert.Equal(t, 2, *req.Page)
	assert.Empty(t, req.Body, "untagged fields are left alone")

	var bad searchRequest
	r = httptest.NewRequest(http.MethodGet, "/catalog/products?limit=many", nil)
	assert.ErrorIs(t, bind(r, &bad), binder.ErrFailedToParseQuery)

	assert.ErrorIs(t, bind(r, bad), binder.ErrFailedToParseQuery, "non-pointer target")
}

type itemRequest struct {
	ID    string `path:"id"`
	Index uint   `path:"index"`
}

func TestPath(t *testing.T) {
	t.Parallel()

	params := map[string]string{"id": "sku-1", "index": "3"}
	bind := binder.Path(func(_ *http.Request, name string) string { return params[name] })

	var req itemRequest
	require.NoError(t, bind(httptest.NewRequest(http.MethodPost, "/", nil), &req))
	assert.Equal(t, "sku-1", req.ID)
	assert.Equal(t, uint(3), req.Index)

	params["index"] = "-1"
	var bad itemRequest
	assert.ErrorIs(t, bind(httptest.NewRequest(http.MethodPost, "/", nil), &bad), binder.ErrFailedToParsePath)
}
