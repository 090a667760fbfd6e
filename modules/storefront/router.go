package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the storefront module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	Cart    Mountable
	Auth    Mountable
	Catalog Mountable
	Promo   Mountable
}

// Router creates the storefront API router. It expects the cookie jar,
// keyring and session middlewares to run before it.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(cookies.Middleware, keyring.Middleware(log), sessions.Middleware)
//	r.Mount("/api", storefront.Router(storefront.RouterOptions{
//	    Cart:    storefront.NewCartService(client, log, errorHandler),
//	    Catalog: storefront.NewCatalogService(client, errorHandler),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Cart != nil {
		r.Mount("/cart", opts.Cart.Handle())
	}
	if opts.Auth != nil {
		r.Mount("/auth", opts.Auth.Handle())
	}
	if opts.Catalog != nil {
		r.Mount("/catalog", opts.Catalog.Handle())
	}
	if opts.Promo != nil {
		r.Mount("/promo", opts.Promo.Handle())
	}

	return r
}
