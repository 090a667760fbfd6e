package storefront

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// clientState is the per-request view of the shopper's browser storage.
type clientState struct {
	jar  *cookie.Jar
	keys keyring.Keyring
}

func stateFromContext(ctx context.Context) (clientState, error) {
	jar, ok := cookie.JarFromContext(ctx)
	if !ok {
		return clientState{}, ErrClientState
	}
	keys, ok := keyring.FromContext(ctx)
	if !ok {
		return clientState{}, ErrClientState
	}
	return clientState{jar: jar, keys: keys}, nil
}

// openCart restores the shopper's cart from the encrypted cookie. Notices
// emitted by later mutations are collected into notices.
func (s clientState) openCart(ctx context.Context, log *slog.Logger, notices cart.Notifier) *cart.Store {
	c := cart.New(
		cart.NewCookiePersister(s.jar, s.keys.Cart, s.keys.CartCookie),
		cart.WithLogger(log),
		cart.WithNotifier(notices),
	)
	c.Load(ctx, session.IsAuthenticated(ctx))
	return c
}
