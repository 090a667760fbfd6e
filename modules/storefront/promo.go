package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/promo"
)

type PromoService struct {
	promos       *promo.Service
	opts         options
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewPromoService(promos *promo.Service, errorHandler handler.ErrorHandler[handler.Context], opts ...Option) *PromoService {
	o := newOptions(opts)
	return &PromoService{
		promos:       promos,
		opts:         o,
		errorHandler: o.errorHandler(errorHandler),
	}
}

func (s *PromoService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.state,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/modal/dismiss", handler.Wrap(s.dismiss,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/spin", handler.Wrap(s.spin,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

// SpinResponse reports a wheel spin and what it does to the current cart.
type SpinResponse struct {
	Spin            promo.SpinResult `json:"spin"`
	Fresh           bool             `json:"fresh"`
	CartTotal       decimal.Decimal  `json:"cartTotal"`
	DiscountedTotal decimal.Decimal  `json:"discountedTotal"`
}

func (s *PromoService) state(ctx handler.Context, _ struct{}) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(s.promos.State(ctx, state.keys))
}

func (s *PromoService) dismiss(ctx handler.Context, _ struct{}) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.promos.DismissModal(ctx, state.keys); err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(s.promos.State(ctx, state.keys))
}

func (s *PromoService) spin(ctx handler.Context, _ struct{}) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, fresh, err := s.promos.SpinWheel(ctx, state.keys)
	if err != nil {
		return s.fail(ctx, err)
	}

	total := state.openCart(ctx, s.opts.log, nil).GrandTotal()
	status := http.StatusOK
	if fresh {
		status = http.StatusCreated
	}
	return handler.JSON(SpinResponse{
		Spin:            result,
		Fresh:           fresh,
		CartTotal:       total,
		DiscountedTotal: result.Apply(total),
	}, handler.WithJSONStatus(status))
}

func (s *PromoService) fail(ctx handler.Context, err error) handler.Response {
	s.errorHandler(ctx, err)
	return handled{}
}
