package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// normalize validates a catalog product and derives the charged price.
//
// An explicit price wins; otherwise price = originalPrice - discount. A missing
// originalPrice defaults to the price, and a missing discount to
// originalPrice - price.
func normalize(p Product) (ProductData, error) {
	var price decimal.Decimal
	switch {
	case p.Price.Valid:
		price = p.Price.Decimal
	case p.OriginalPrice.Valid:
		price = p.OriginalPrice.Decimal.Sub(valueOr(p.Discount, decimal.Zero))
	}

	original := valueOr(p.OriginalPrice, price)
	discount := valueOr(p.Discount, original.Sub(price))
	evPoint := valueOr(p.EVPoint, decimal.Zero)

	err := validator.Apply(
		validator.RequiredString("id", string(p.ID)),
		validator.RequiredString("name", p.Name),
		validator.Present("price", p.Price.Valid || p.OriginalPrice.Valid),
		validator.NonNegativeAmount("price", price),
		validator.NonNegativeAmount("originalPrice", original),
		validator.NonNegativeAmount("discount", discount),
		validator.NonNegativeAmount("evPoint", evPoint),
		validator.AmountAtMost("price", price, original),
	)
	if err != nil {
		return ProductData{}, errors.Join(ErrInvalidProduct, err)
	}

	return ProductData{
		Name:          p.Name,
		Price:         price,
		OriginalPrice: original,
		Discount:      discount,
		EVPoint:       evPoint,
		Image:         p.Image,
		Category:      p.Category,
	}, nil
}

// MaxQty caps a line's quantity. Merges and increments stop at it.
const MaxQty = 999

func validateQty(qty int) error {
	err := validator.Apply(
		validator.PositiveInt("quantity", qty),
		validator.IntAtMost("quantity", qty, MaxQty),
	)
	if err != nil {
		return errors.Join(ErrInvalidQuantity, err)
	}
	return nil
}

func newItem(p Product, data ProductData, qty int, authenticated bool) Item {
	it := Item{
		ID:            p.ID,
		Name:          data.Name,
		Price:         data.Price,
		OriginalPrice: data.OriginalPrice,
		Discount:      data.Discount,
		Qty:           qty,
		Image:         p.Image,
		Category:      p.Category,
		Link:          p.Link,
		ProductData:   data,
	}
	it.EVPoint = it.evPointFor(authenticated)
	return it
}

func valueOr(v decimal.NullDecimal, def decimal.Decimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return def
}
