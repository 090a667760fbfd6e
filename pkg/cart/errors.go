package cart

import "errors"

var (
	ErrInvalidProduct  = errors.New("cart.invalid_product")
	ErrInvalidQuantity = errors.New("cart.invalid_quantity")
	ErrPersist         = errors.New("cart.persist_failed")
	ErrLoad            = errors.New("cart.load_failed")
)
