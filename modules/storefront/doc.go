// Package storefront mounts the shopper-facing JSON API: cart, login,
// catalog and promotions.
//
// Every service reads the shopper's state from the request context, so the
// router must sit behind the cookie jar, keyring and session middlewares:
//
//	r.Use(requestid.Middleware, storefront.RequestLogger(log))
//	r.Use(cookies.Middleware, keyring.Middleware(log), sessions.Middleware)
//	r.Mount("/api", storefront.Router(storefront.RouterOptions{...}))
//
// Responses use the handler package envelope. Cart notices are returned in
// meta.notices.
package storefront
