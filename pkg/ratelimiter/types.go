package ratelimiter

import "time"

// Result contains the result of a rate limit check.
type Result struct {
	Limit     int       // Maximum tokens (bucket capacity)
	Remaining int       // Tokens remaining; negative when the request was denied
	ResetAt   time.Time // Time when tokens will be refilled
}

// Allowed returns whether the request is allowed based on remaining tokens.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request, measured from
// now. Returns 0 if the request was allowed.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, r.ResetAt.Sub(now))
}

// Config defines the token bucket configuration. The defaults allow a burst of
// five login attempts and one more per minute.
type Config struct {
	Capacity       int           `env:"LOGIN_RATE_CAPACITY" envDefault:"5"`         // burst limit
	RefillRate     int           `env:"LOGIN_RATE_REFILL" envDefault:"1"`           // tokens added per interval
	RefillInterval time.Duration `env:"LOGIN_RATE_REFILL_INTERVAL" envDefault:"1m"` // how often tokens are added
}
