// Command storefront serves the shopper-facing storefront API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/modules/storefront"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/commerce"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/environment"
	"github.com/dmitrymomot/storefront/pkg/fingerprint"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/metrics"
	"github.com/dmitrymomot/storefront/pkg/promo"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/pkg/session"
	"github.com/dmitrymomot/storefront/pkg/token"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.Service),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	m := metrics.New(cfg.RuntimeMetrics)
	var checks []httpserver.Check

	var (
		backend  kvstore.Backend
		limits   ratelimiter.Store
		janitors []func(context.Context) error
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		backend = kvstore.NewRedis(client, cfg.Redis.KeyPrefix)
		limits = ratelimiter.NewRedisStore(client, cfg.Redis.KeyPrefix)
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
	} else {
		log.Warn("REDIS_URL not set, key-value store is process local", logger.Component("kvstore"))
		mem := kvstore.NewMemory(cfg.MemoryCapacity)
		buckets := ratelimiter.NewMemoryStore()
		backend, limits = mem, buckets
		janitors = append(janitors, mem.Janitor(cfg.JanitorInterval), buckets.Janitor(cfg.JanitorInterval))
	}

	if cfg.TokenCacheSecret == "" {
		log.Warn("TOKEN_CACHE_SECRET not set, token cache uses the shared fallback key", logger.Component("token"))
	}
	cacheKeys, err := keyring.Derive(cfg.TokenCacheSecret)
	if err != nil {
		return err
	}

	// The token service and the client refer to each other: the client asks
	// the service for tokens and the service logs in through the client.
	var api *commerce.Client
	tokens := token.New(
		func(ctx context.Context) (string, error) { return api.Login(ctx) },
		token.WithTTL(cfg.Commerce.TokenTTL),
		token.WithCache(kvstore.NewVault(backend, cacheKeys)),
		token.WithLogger(log),
		token.WithFetchHook(m.TokenFetch),
	)
	api, err = commerce.New(cfg.Commerce,
		commerce.WithTokenSource(tokens),
		commerce.WithLogger(log),
		commerce.WithAttemptHook(m.CommerceAttempt),
	)
	if err != nil {
		return err
	}
	checks = append(checks, httpserver.Check{Name: "commerce", Probe: api.Healthcheck})

	formatter, err := cart.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return fmt.Errorf("cart formatter: %w", err)
	}

	loginLimit, err := ratelimiter.NewBucket(limits, cfg.Login)
	if err != nil {
		return err
	}

	cookies := cookie.NewFromConfig(cfg.Cookie, cookie.WithSecure(cfg.Cookie.Secure || env.SecureCookies()))
	sessions := session.NewFromConfig(cfg.Session, session.WithLogger(log))
	promos := promo.New(backend, promo.WithConfig(cfg.Promo), promo.WithLogger(log))

	errorHandler := handler.NewErrorHandler[handler.Context](log, storefront.MapError)
	opts := []storefront.Option{
		storefront.WithLogger(log),
		storefront.WithFormatter(formatter),
		storefront.WithMutationHook(m.CartMutation),
		storefront.WithLoginLimit(loginLimit),
	}

	var fpOpts []fingerprint.Option
	if cfg.TrustProxyHeaders {
		fpOpts = append(fpOpts, fingerprint.WithForwardedHeaders())
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		environment.Middleware(env),
		storefront.RequestLogger(log),
		middleware.Recoverer,
		m.Middleware,
	)
	r.Get("/health", httpserver.HealthCheckHandler(log, cfg.HealthTimeout, checks...))
	r.Handle("/metrics", m.Handler())
	r.Group(func(r chi.Router) {
		r.Use(cookies.Middleware, keyring.Middleware(log, fpOpts...), sessions.Middleware)
		r.Mount("/api", storefront.Router(storefront.RouterOptions{
			Cart:    storefront.NewCartService(api, errorHandler, opts...),
			Auth:    storefront.NewAuthService(api, sessions, errorHandler, opts...),
			Catalog: storefront.NewCatalogService(api, errorHandler, opts...),
			Promo:   storefront.NewPromoService(promos, errorHandler, opts...),
		}))
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
	})

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx, r) })
	for _, janitor := range janitors {
		g.Go(func() error { return janitor(ctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("storefront stopped", logger.Error(err))
		return err
	}
	log.Info("storefront stopped", slog.String("env", string(env)))
	return nil
}
