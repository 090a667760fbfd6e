package main

import (
	"time"

	"github.com/dmitrymomot/storefront/pkg/commerce"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/promo"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/session"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"SERVICE_NAME" envDefault:"storefront"`
	LogLevel string `env:"LOG_LEVEL" envDefault:""`

	// Display formatting for cart totals.
	Locale   string `env:"STORE_LOCALE" envDefault:"id-ID"`
	Currency string `env:"STORE_CURRENCY" envDefault:"IDR"`

	// TokenCacheSecret keys the encrypted API token cache shared by replicas.
	TokenCacheSecret string `env:"TOKEN_CACHE_SECRET" envDefault:""`

	MemoryCapacity  int           `env:"KV_MEMORY_CAPACITY" envDefault:"10000"`
	JanitorInterval time.Duration `env:"KV_JANITOR_INTERVAL" envDefault:"1m"`
	HealthTimeout   time.Duration `env:"HEALTH_TIMEOUT" envDefault:"3s"`
	RuntimeMetrics  bool          `env:"METRICS_RUNTIME" envDefault:"true"`

	// TrustProxyHeaders takes the site origin for the device fingerprint from
	// X-Forwarded-Proto/X-Forwarded-Host. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	HTTP     httpserver.Config
	Cookie   cookie.Config
	Session  session.Config
	Commerce commerce.Config
	Redis    redis.Config
	Promo    promo.Config
	Login    ratelimiter.Config
}
