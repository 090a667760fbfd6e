package commerce

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/cart"
)

// Product is a catalog entry as returned by the product actions.
type Product struct {
	ID            cart.ProductID      `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.NullDecimal `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Discount      decimal.NullDecimal `json:"discount"`
	EVPoint       decimal.NullDecimal `json:"evPoint"`
	Image         string              `json:"image,omitempty"`
	Category      string              `json:"category,omitempty"`
	Link          string              `json:"link,omitempty"`
	Stock         int                 `json:"stock"`
	StoreID       string              `json:"storeId,omitempty"`
}

// CartProduct converts the catalog entry into cart input.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		EVPoint:       p.EVPoint,
		Image:         p.Image,
		Category:      p.Category,
		Link:          p.Link,
	}
}

// Store is a physical or virtual outlet products are sold from.
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ProductQuery filters SearchProducts. Zero values fall back to the client
// configuration.
type ProductQuery struct {
	Search   string
	Category string
	StoreID  string
	Limit    int
	Fields   []string
}

// Member is the authenticated customer. Raw keeps the full remote payload
// for storage in the session.
type Member struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Raw   json.RawMessage `json:"-"`
}

// AttemptResult describes one HTTP round trip to the commerce API.
type AttemptResult struct {
	Action     string
	Attempt    int
	StatusCode int
	Duration   time.Duration
	Err        error
}
