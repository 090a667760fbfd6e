package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:""`                   // empty keeps the key-value store in process memory
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"storefront:"` // namespace for every key written by the service
	PoolSize       int           `env:"REDIS_POOL_SIZE" envDefault:"0"`            // 0 keeps the go-redis default
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"` // first pause, doubled per attempt
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether a Redis URL was configured.
func (c Config) Enabled() bool { return c.ConnectionURL != "" }
