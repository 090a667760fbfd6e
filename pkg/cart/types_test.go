package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cart"
)

func TestProductID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want cart.ProductID
	}{
		{`"sku-1"`, "sku-1"},
		{`" 42 "`, "42"},
		{`42`, "42"},
		{`1.5`, "1.5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id cart.ProductID
		require.NoError(t, json.Unmarshal([]byte(tt.in), &id), tt.in)
		assert.Equal(t, tt.want, id, tt.in)
	}

	var id cart.ProductID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestProduct_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var p cart.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Widget","originalPrice":100,"discount":"20"}`), &p))

	assert.Equal(t, cart.ProductID("1"), p.ID)
	assert.False(t, p.Price.Valid)
	assert.False(t, p.EVPoint.Valid)
	require.True(t, p.OriginalPrice.Valid)
	assert.True(t, p.OriginalPrice.Decimal.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Discount.Decimal.Equal(decimal.NewFromInt(20)))
}

func TestCalculateTotalDiscount(t *testing.T) {
	t.Parallel()

	items := []cart.Item{
		{ID: "1", Qty: 2, Discount: decimal.NewFromInt(20)},
		{ID: "2", Qty: 3, Discount: decimal.RequireFromString("1.5")},
		{ID: "3", Qty: 1, Discount: decimal.Zero},
	}
	assert.True(t, cart.CalculateTotalDiscount(items).Equal(decimal.RequireFromString("44.5")))
	assert.True(t, cart.CalculateTotalDiscount(nil).IsZero())
}

func TestFormatter(t *testing.T) {
	t.Parallel()

	f, err := cart.NewFormatter("en-US", "USD")
	require.NoError(t, err)
	out := f.Format(decimal.RequireFromString("1234.5"))
	assert.Contains(t, out, "$")
	assert.Contains(t, out, "1,234.50")

	_, err = cart.NewFormatter("en-US", "NOPE")
	assert.Error(t, err)

	assert.Contains(t, cart.FormatCurrency(decimal.NewFromInt(240)), "240")
}
