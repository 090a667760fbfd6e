package cart

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID identifies a catalog product. The remote catalog emits ids as
// either JSON strings or numbers; both decode to the same ProductID.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) String() string { return string(id) }

// Product is the catalog input accepted by AddToCart. Optional amounts are
// NullDecimal so "absent" can be told apart from zero.
type Product struct {
	ID            ProductID           `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.NullDecimal `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Discount      decimal.NullDecimal `json:"discount"`
	EVPoint       decimal.NullDecimal `json:"evPoint"`
	Image         string              `json:"image,omitempty"`
	Category      string              `json:"category,omitempty"`
	Link          string              `json:"link,omitempty"`
}

// ProductData is the snapshot of product fields retained on each item and used
// to recompute the loyalty discount when authentication state changes.
type ProductData struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Discount      decimal.Decimal `json:"discount"`
	EVPoint       decimal.Decimal `json:"evPoint"`
	Image         string          `json:"image,omitempty"`
	Category      string          `json:"category,omitempty"`
}

// Item is one cart line.
type Item struct {
	ID            ProductID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Discount      decimal.Decimal `json:"discount"`
	EVPoint       decimal.Decimal `json:"evPoint"`
	Qty           int             `json:"qty"`
	Image         string          `json:"image,omitempty"`
	Category      string          `json:"category,omitempty"`
	Link          string          `json:"link,omitempty"`
	ProductData   ProductData     `json:"productData"`
}

// LineTotal returns qty * price.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// evPointFor returns the loyalty discount applicable under the given
// authentication state.
func (i Item) evPointFor(authenticated bool) decimal.Decimal {
	if !authenticated {
		return decimal.Zero
	}
	return i.ProductData.EVPoint
}

// Snapshot is the persisted shape of a cart.
type Snapshot struct {
	Items        []Item          `json:"items"`
	Total        decimal.Decimal `json:"total"`
	EVPointTotal decimal.Decimal `json:"evPointTotal"`
}

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a user-facing message emitted after a cart mutation.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}
