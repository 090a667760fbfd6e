package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/commerce"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/session"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Authenticator checks shopper credentials against the commerce backend.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*commerce.Member, error)
}

type AuthService struct {
	members      Authenticator
	sessions     *session.Manager
	opts         options
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewAuthService(
	members Authenticator,
	sessions *session.Manager,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...Option,
) *AuthService {
	o := newOptions(opts)
	return &AuthService{
		members:      members,
		sessions:     sessions,
		opts:         o,
		errorHandler: o.errorHandler(errorHandler),
	}
}

func (s *AuthService) Handle() http.Handler {
	r := chi.NewRouter()

	login := handler.Wrap(s.login,
		handler.WithBinders[handler.Context, LoginRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
	)
	if s.opts.loginLimit != nil {
		r.With(ratelimiter.Middleware(s.opts.loginLimit, loginKey,
			ratelimiter.WithLogger(s.opts.log),
			ratelimiter.WithLimitedHandler(http.HandlerFunc(tooManyAttempts)),
		)).Post("/login", login)
	} else {
		r.Post("/login", login)
	}
	r.Post("/logout", handler.Wrap(s.logout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/me", handler.Wrap(s.me,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

var loginKey = ratelimiter.Composite(ratelimiter.ByIP(), ratelimiter.ByFingerprint())

func tooManyAttempts(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.ErrTooManyRequests.WithMessage("Too many login attempts. Try again later.")).Render(w, r)
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (req LoginRequest) validate() error {
	return validator.Apply(
		validator.RequiredString("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.RequiredString("password", req.Password),
	)
}

// LoginResponse is returned after a successful login or logout.
type LoginResponse struct {
	User json.RawMessage `json:"user,omitempty"`
	Cart CartView        `json:"cart"`
}

// MeResponse describes the current session.
type MeResponse struct {
	User      json.RawMessage `json:"user"`
	LoginTime time.Time       `json:"loginTime"`
}

func (s *AuthService) login(ctx handler.Context, req LoginRequest) handler.Response {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.validate(); err != nil {
		return s.fail(ctx, err)
	}
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	member, err := s.members.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return s.fail(ctx, err)
	}
	user := member.Raw
	if len(user) == 0 {
		if user, err = json.Marshal(member); err != nil {
			return s.fail(ctx, err)
		}
	}

	// The cart is restored under the pre-login state so the flip below
	// re-applies loyalty discounts.
	notices := &cart.NoticeCollector{}
	c := state.openCart(ctx, s.opts.log, notices)

	if _, err := s.sessions.SetSecure(ctx, state.jar, state.keys, user, req.RememberMe); err != nil {
		return s.fail(ctx, err)
	}
	c.SetAuthenticated(ctx, true)

	if s.opts.loginLimit != nil {
		if err := s.opts.loginLimit.Reset(ctx, loginKey(ctx.Request())); err != nil {
			s.opts.log.WarnContext(ctx, "reset login limit", logger.Error(err), logger.Component("storefront"))
		}
	}

	s.opts.log.InfoContext(ctx, "shopper logged in",
		logger.Component("storefront"),
		logger.Event("login"),
		logger.UserID(member.ID),
	)
	return handler.JSON(LoginResponse{
		User: user,
		Cart: newCartView(c, s.opts.formatter),
	}, withNotices(notices))
}

func (s *AuthService) logout(ctx handler.Context, _ struct{}) handler.Response {
	state, err := stateFromContext(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	notices := &cart.NoticeCollector{}
	c := state.openCart(ctx, s.opts.log, notices)
	s.sessions.ClearSecure(ctx, state.jar)
	c.SetAuthenticated(ctx, false)

	return handler.JSON(LoginResponse{Cart: newCartView(c, s.opts.formatter)}, withNotices(notices))
}

func (s *AuthService) me(ctx handler.Context, _ struct{}) handler.Response {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.IsAuthenticated() {
		return handler.JSONError(handler.ErrUnauthorized)
	}
	return handler.JSON(MeResponse{User: sess.User, LoginTime: sess.LoginTime})
}

func (s *AuthService) fail(ctx handler.Context, err error) handler.Response {
	s.errorHandler(ctx, err)
	return handled{}
}
