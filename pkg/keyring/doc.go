// Package keyring derives all device-bound key material for a request in one
// place: the cart key, the auth session key, the local storage key and the
// cart cookie name.
//
// Keys are derived once per request by Middleware (or Derive) and handed to the
// stores explicitly, instead of living in process-wide variables.
//
//	router.Use(keyring.Middleware(log))
//
//	keys := keyring.MustFromContext(r.Context())
//	persister := cart.NewCookiePersister(jar, keys.Cart, keys.CartCookie)
package keyring
