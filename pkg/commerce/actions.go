package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/cart"
)

const (
	actionLogin   = "login"
	actionMember  = "member"
	actionProduct = "product"
	actionStore   = "store"

	defaultLimit = 20
	maxLimit     = 100
)

// ErrInvalidCredentials is returned by Authenticate when the API rejects the
// email and password pair.
var ErrInvalidCredentials = errors.New("commerce.invalid_credentials")

// Login exchanges the configured API credentials for a bearer token.
// It has the token.FetchFunc signature.
func (c *Client) Login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("method", "token")
	form.Set("sourcename", c.cfg.SourceName)
	form.Set("condition", condition(map[string]string{
		"username": c.cfg.APIUser,
		"password": c.cfg.APISecret,
	}))

	var raw json.RawMessage
	if err := c.do(ctx, actionLogin, form, &raw); err != nil {
		return "", err
	}

	var tok string
	if err := json.Unmarshal(raw, &tok); err == nil {
		return tok, nil
	}
	var obj struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if obj.Token != "" {
		return obj.Token, nil
	}
	return obj.AccessToken, nil
}

// Authenticate verifies a customer's credentials.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	form := url.Values{}
	form.Set("method", "login")
	form.Set("sourcename", c.cfg.SourceName)
	form.Set("condition", condition(map[string]string{
		"email":    email,
		"password": password,
	}))

	var raw json.RawMessage
	err := c.call(ctx, actionMember, form, &raw)
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr), errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case err != nil:
		return nil, err
	}

	m := &Member{Raw: raw}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if m.Email == "" {
		m.Email = email
	}
	return m, nil
}

// SearchProducts lists catalog products. No match is an empty slice.
func (c *Client) SearchProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	form := url.Values{}
	form.Set("method", "list")
	form.Set("sourcename", c.cfg.SourceName)
	form.Set("storeid", c.storeID(q.StoreID))
	form.Set("limit", strconv.Itoa(clampLimit(q.Limit)))
	if s := strings.TrimSpace(q.Search); s != "" {
		form.Set("strstr", s)
	}
	if q.Category != "" {
		form.Set("condition", condition(map[string]string{"category": q.Category}))
	}
	if len(q.Fields) > 0 {
		form.Set("fields", strings.Join(q.Fields, ","))
	}

	var products []Product
	err := c.call(ctx, actionProduct, form, &products)
	if errors.Is(err, ErrNotFound) {
		return []Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// Product fetches one catalog entry. The API answers with either an object or
// a one-element list.
func (c *Client) Product(ctx context.Context, id cart.ProductID) (*Product, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidArgument)
	}

	form := url.Values{}
	form.Set("method", "detail")
	form.Set("sourcename", c.cfg.SourceName)
	form.Set("storeid", c.storeID(""))
	form.Set("condition", condition(map[string]string{"id": id.String()}))

	var raw json.RawMessage
	if err := c.call(ctx, actionProduct, form, &raw); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []Product
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if len(list) == 0 {
			return nil, ErrNotFound
		}
		return &list[0], nil
	}

	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if p.ID == "" {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Stores lists the outlets of the configured company.
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	form := url.Values{}
	form.Set("method", "list")
	form.Set("sourcename", c.cfg.SourceName)

	var stores []Store
	err := c.call(ctx, actionStore, form, &stores)
	if errors.Is(err, ErrNotFound) {
		return []Store{}, nil
	}
	if err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []Store{}
	}
	return stores, nil
}

func (c *Client) storeID(override string) string {
	if override != "" {
		return override
	}
	return c.cfg.StoreID
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultLimit
	case n > maxLimit:
		return maxLimit
	}
	return n
}

func condition(v map[string]string) string {
	b, _ := json.Marshal(v)
	return string(b)
}
