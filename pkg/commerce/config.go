package commerce

import "time"

// Config describes the remote commerce API.
type Config struct {
	BaseURL    string        `env:"COMMERCE_API_URL" envDefault:"http://localhost:9000"`
	Company    string        `env:"COMMERCE_COMPANY" envDefault:""`  // "com" field
	StoreID    string        `env:"COMMERCE_STORE_ID" envDefault:""` // default "storeid" for catalog queries
	SourceName string        `env:"COMMERCE_SOURCE_NAME" envDefault:"web"`
	APIUser    string        `env:"COMMERCE_API_USER" envDefault:""`
	APISecret  string        `env:"COMMERCE_API_SECRET" envDefault:""`
	Timeout    time.Duration `env:"COMMERCE_TIMEOUT" envDefault:"10s"` // per attempt
	MaxRetries int           `env:"COMMERCE_MAX_RETRIES" envDefault:"2"`
	TokenTTL   time.Duration `env:"COMMERCE_TOKEN_TTL" envDefault:"30m"`

	BreakerFailures uint32        `env:"COMMERCE_BREAKER_FAILURES" envDefault:"5"`
	BreakerTimeout  time.Duration `env:"COMMERCE_BREAKER_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:9000",
		SourceName:      "web",
		Timeout:         10 * time.Second,
		MaxRetries:      2,
		TokenTTL:        30 * time.Minute,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}
