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

// Cart mutation names reported to the mutation hook.
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpIncrease = "increase"
	OpDecrease = "decrease"
	OpClear    = "clear"
)

// ProductLookup resolves a product id to its catalog record.
type ProductLookup interface {
	Product(ctx context.Context, id cart.ProductID) (*commerce.Product, error)
}

type CartService struct {
	products     ProductLookup
	opts         options
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewCartService creates the cart endpoints. products may be nil, in which
// case adding an item requires the full product in the request.
func NewCartService(
	products ProductLookup,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...Option,
) *CartService {
	o := newOptions(opts)
	return &CartService{
		products:     products,
		opts:         o,
		errorHandler: o.errorHandler(errorHandler),
	}
}

func (s *CartService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.show,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Delete("/", handler.Wrap(s.clear,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/items", handler.Wrap(s.addItem,
		handler.WithBinders[handler.Context, AddItemRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, AddItemRequest](s.errorHandler),
	))

	itemBinders := handler.WithBinders[handler.Context, ItemRequest](binder.Path(chi.URLParam))
	itemErrors := handler.WithErrorHandler[handler.Context, ItemRequest](s.errorHandler)
	r.Delete("/items/{id}", handler.Wrap(s.removeItem, itemBinders, itemErrors))
	r.Post("/items/{id}/increase", handler.Wrap(s.increase, itemBinders, itemErrors))
	r.Post("/items/{id}/decrease", handler.Wrap(s.decrease, itemBinders, itemErrors))

	return r
}

// AddItemRequest adds a product to the cart. Either Product or ProductID must
// be set; a bare ProductID is resolved through the catalog.
type AddItemRequest struct {
	Product   *cart.Product  `json:"product"`
	ProductID cart.ProductID `json:"product_id"`
	Quantity  *int           `json:"quantity"`
}

// ItemRequest addresses one cart line by product id.
type ItemRequest struct {
	ID cart.ProductID `path:"id" json:"-"`
}

func (s *CartService) show(ctx handler.Context, _ struct{}) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	c := state.openCart(ctx, s.opts.log, nil)
	return handler.JSON(newCartView(c, s.opts.formatter))
}

func (s *CartService) clear(ctx handler.Context, _ struct{}) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	notices := &cart.NoticeCollector{}
	c := state.openCart(ctx, s.opts.log, notices)
	c.Clear(ctx)
	s.opts.onMutation(OpClear)
	return handler.JSON(newCartView(c, s.opts.formatter), withNotices(notices))
}

func (s *CartService) addItem(ctx handler.Context, req AddItemRequest) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.resolveProduct(ctx, req)
	if err != nil {
		return s.fail(ctx, err)
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	notices := &cart.NoticeCollector{}
	c := state.openCart(ctx, s.opts.log, notices)
	if err := c.AddToCart(ctx, p, qty); err != nil {
		return s.fail(ctx, err)
	}
	s.opts.onMutation(OpAdd)
	return handler.JSON(newCartView(c, s.opts.formatter), withNotices(notices))
}

func (s *CartService) resolveProduct(ctx context.Context, req AddItemRequest) (cart.Product, error) {
	if req.Product != nil {
		return *req.Product, nil
	}
	if req.ProductID == "" {
		// Let the cart reject it with field-level details.
		return cart.Product{}, nil
	}
	if s.products == nil {
		return cart.Product{}, ErrNoCatalog
	}
	p, err := s.products.Product(ctx, req.ProductID)
	if err != nil {
		return cart.Product{}, err
	}
	return p.CartProduct(), nil
}

func (s *CartService) removeItem(ctx handler.Context, req ItemRequest) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	notices := &cart.NoticeCollector{}
	c := state.openCart(ctx, s.opts.log, notices)

	item, ok := c.Item(req.ID)
	if !ok || !c.RemoveItemByID(ctx, req.ID, item.Name) {
		return s.fail(ctx, ErrItemNotFound)
	}
	s.opts.onMutation(OpRemove)
	return handler.JSON(newCartView(c, s.opts.formatter), withNotices(notices))
}

func (s *CartService) increase(ctx handler.Context, req ItemRequest) handler.Response {
	return s.adjust(ctx, req.ID, OpIncrease, (*cart.Store).IncreaseQty)
}

func (s *CartService) decrease(ctx handler.Context, req ItemRequest) handler.Response {
	return s.adjust(ctx, req.ID, OpDecrease, (*cart.Store).DecreaseQty)
}

func (s *CartService) adjust(
	ctx handler.Context,
	id cart.ProductID,
	op string,
	apply func(*cart.Store, context.Context, cart.ProductID) bool,
) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	notices := &cart.NoticeCollector{}
	c := state.openCart(ctx, s.opts.log, notices)
	if !apply(c, ctx, id) {
		return s.fail(ctx, ErrItemNotFound)
	}
	s.opts.onMutation(op)
	return handler.JSON(newCartView(c, s.opts.formatter), withNotices(notices))
}

// fail hands err to the error handler and renders nothing further.
func (s *CartService) fail(ctx handler.Context, err error) handler.Response {
	s.errorHandler(ctx, err)
	return handled{}
}
