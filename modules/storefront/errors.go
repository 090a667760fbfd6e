package storefront

import (
	"errors"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/commerce"
	"github.com/dmitrymomot/storefront/pkg/promo"
)

var (
	ErrClientState  = errors.New("storefront.client_state_missing")
	ErrItemNotFound = errors.New("storefront.item_not_found")
	ErrNoCatalog    = errors.New("storefront.catalog_unavailable")
)

// MapError translates storefront and commerce errors into HTTP errors. Use it
// with handler.NewErrorHandler.
func MapError(err error) error {
	switch {
	case errors.Is(err, ErrItemNotFound), errors.Is(err, commerce.ErrNotFound):
		return handler.ErrNotFound
	case errors.Is(err, commerce.ErrInvalidCredentials):
		return handler.ErrUnauthorized.WithMessage("Email or password is incorrect.")
	case errors.Is(err, commerce.ErrCircuitOpen):
		return handler.ErrServiceUnavailable.WithMessage("The shop is temporarily unavailable.")
	case errors.Is(err, commerce.ErrTimeout):
		return handler.ErrGatewayTimeout
	case errors.Is(err, commerce.ErrRequestFailed),
		errors.Is(err, commerce.ErrTemporary),
		errors.Is(err, commerce.ErrAPIStatus),
		errors.Is(err, commerce.ErrMalformed),
		errors.Is(err, commerce.ErrUnauthorized):
		return handler.ErrBadGateway
	case errors.Is(err, commerce.ErrInvalidArgument):
		return handler.ErrBadRequest
	case errors.Is(err, promo.ErrNoClientKey):
		return handler.ErrBadRequest.WithMessage("This browser cannot be identified.")
	case errors.Is(err, cart.ErrInvalidProduct), errors.Is(err, cart.ErrInvalidQuantity):
		return handler.ErrUnprocessable
	case errors.Is(err, ErrNoCatalog):
		return handler.ErrBadRequest.WithMessage("A full product is required.")
	}
	return nil
}
