package storefront

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/commerce"
)

// Catalog is the read side of the commerce backend.
type Catalog interface {
	ProductLookup
	SearchProducts(ctx context.Context, q commerce.ProductQuery) ([]commerce.Product, error)
	Stores(ctx context.Context) ([]commerce.Store, error)
}

type CatalogService struct {
	catalog      Catalog
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewCatalogService(catalog Catalog, errorHandler handler.ErrorHandler[handler.Context], opts ...Option) *CatalogService {
	o := newOptions(opts)
	return &CatalogService{
		catalog:      catalog,
		errorHandler: o.errorHandler(errorHandler),
	}
}

func (s *CatalogService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", handler.Wrap(s.search,
		handler.WithBinders[handler.Context, SearchRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, SearchRequest](s.errorHandler),
	))
	r.Get("/products/{id}", handler.Wrap(s.product,
		handler.WithBinders[handler.Context, ItemRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, ItemRequest](s.errorHandler),
	))
	r.Get("/stores", handler.Wrap(s.stores,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

type SearchRequest struct {
	Query    string `query:"q"`
	Category string `query:"category"`
	StoreID  string `query:"store"`
	Limit    int    `query:"limit"`
}

func (s *CatalogService) search(ctx handler.Context, req SearchRequest) handler.Response {
	products, err := s.catalog.SearchProducts(ctx, commerce.ProductQuery{
		Search:   req.Query,
		Category: req.Category,
		StoreID:  req.StoreID,
		Limit:    req.Limit,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(products, handler.WithJSONMeta("count", len(products)))
}

func (s *CatalogService) product(ctx handler.Context, req ItemRequest) handler.Response {
	p, err := s.catalog.Product(ctx, cart.ProductID(req.ID))
	if err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(p)
}

func (s *CatalogService) stores(ctx handler.Context, _ struct{}) handler.Response {
	stores, err := s.catalog.Stores(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(stores)
}

func (s *CatalogService) fail(ctx handler.Context, err error) handler.Response {
	s.errorHandler(ctx, err)
	return handled{}
}
