package storefront

import (
	"log/slog"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
)

// Option configures a storefront service.
type Option func(*options)

type options struct {
	log        *slog.Logger
	formatter  *cart.Formatter
	onMutation func(operation string)
	loginLimit *ratelimiter.Bucket
}

func newOptions(opts []Option) options {
	o := options{
		log:        slog.Default(),
		onMutation: func(string) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithFormatter sets the currency formatter used for display totals.
func WithFormatter(f *cart.Formatter) Option {
	return func(o *options) { o.formatter = f }
}

// WithMutationHook is called with the operation name after every successful
// cart mutation.
func WithMutationHook(fn func(operation string)) Option {
	return func(o *options) {
		if fn != nil {
			o.onMutation = fn
		}
	}
}

// WithLoginLimit throttles login attempts per client IP and device. A
// successful login resets the caller's bucket.
func WithLoginLimit(b *ratelimiter.Bucket) Option {
	return func(o *options) { o.loginLimit = b }
}

// errorHandler returns h, or a JSON error handler using MapError when h is nil.
func (o options) errorHandler(h handler.ErrorHandler[handler.Context]) handler.ErrorHandler[handler.Context] {
	if h != nil {
		return h
	}
	return handler.NewErrorHandler[handler.Context](o.log, MapError)
}
