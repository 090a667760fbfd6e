package commerce

import (
	"log/slog"
	"net/http"
	"time"
)

type Option func(*Client)

// WithHTTPClient replaces the pooled default client. Useful for tests and
// custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTokenSource sets where bearer tokens for authorized actions come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithBackoff(b BackoffStrategy) Option {
	return func(c *Client) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithAttemptHook is called after every HTTP attempt, including retries.
func WithAttemptHook(fn func(AttemptResult)) Option {
	return func(c *Client) { c.onAttempt = fn }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
