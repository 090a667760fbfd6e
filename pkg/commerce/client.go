package commerce

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

const maxResponseBody = 1 << 20

// TokenSource hands out the bearer token sent with authorized actions.
// token.Service satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context)
}

// Client talks to the remote commerce API. All actions are form-encoded POSTs
// to a single endpoint. Safe for concurrent use.
type Client struct {
	cfg       Config
	client    *http.Client
	tokens    TokenSource
	breaker   *gobreaker.CircuitBreaker
	backoff   BackoffStrategy
	onAttempt func(AttemptResult)
	log       *slog.Logger
	now       func() time.Time
}

func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	c := &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		backoff: DefaultBackoffStrategy(),
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("commerce"))

	if cfg.BreakerFailures > 0 {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "commerce",
			Timeout: cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			IsSuccessful: func(err error) bool {
				// Caller mistakes and cancellations say nothing about upstream health.
				return err == nil || errors.Is(err, ErrPermanent) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warn("circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		})
	}

	return c, nil
}

// call runs an authorized action. A 401 drops the current token and the
// action is retried once with a fresh one.
func (c *Client) call(ctx context.Context, action string, form url.Values, dst any) error {
	if c.tokens == nil {
		return ErrNoTokenSource
	}
	for try := 0; ; try++ {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		form.Set("token", tok)

		err = c.do(ctx, action, form, dst)
		if try == 0 && errors.Is(err, ErrUnauthorized) {
			c.log.InfoContext(ctx, "token rejected, refreshing", logger.Action(action))
			c.tokens.Invalidate(ctx)
			continue
		}
		return err
	}
}

func (c *Client) do(ctx context.Context, action string, form url.Values, dst any) error {
	body, err := c.send(ctx, action, form)
	if err != nil {
		return err
	}
	return decodeEnvelope(action, body, dst)
}

// send posts the form with retries on transient failures.
func (c *Client) send(ctx context.Context, action string, form url.Values) ([]byte, error) {
	form.Set("timestamp", strconv.FormatInt(c.now().Unix(), 10))
	form.Set("com", c.cfg.Company)
	form.Set("action", action)
	payload := form.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff.NextInterval(attempt)):
			}
		}

		body, result, err := c.attempt(ctx, action, payload)
		if c.onAttempt != nil {
			result.Attempt = attempt + 1
			c.onAttempt(result)
		}
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, ErrPermanent) || errors.Is(err, ErrCircuitOpen) {
			return nil, err
		}
		c.log.WarnContext(ctx, "commerce request failed",
			logger.Action(action),
			logger.RetryCount(attempt),
			logger.Error(err))
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRequestFailed, c.cfg.MaxRetries+1, lastErr)
}

func (c *Client) attempt(ctx context.Context, action, payload string) ([]byte, AttemptResult, error) {
	result := AttemptResult{Action: action}
	start := time.Now()

	exec := func() (any, error) {
		return c.roundTrip(ctx, payload, &result)
	}

	var (
		out any
		err error
	)
	if c.breaker != nil {
		out, err = c.breaker.Execute(exec)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
	} else {
		out, err = exec()
	}

	result.Duration = time.Since(start)
	result.Err = err
	if err != nil {
		return nil, result, err
	}
	return out.([]byte), result, nil
}

func (c *Client) roundTrip(ctx context.Context, payload string, result *AttemptResult) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "storefront/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTemporary, err)
	}
	defer func() { _ = resp.Body.Close() }()
	result.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTemporary, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := &HTTPError{StatusCode: resp.StatusCode, Body: sanitize(body)}
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %w: %w", ErrPermanent, ErrUnauthorized, herr)
		case isPermanentStatus(resp.StatusCode):
			return nil, fmt.Errorf("%w: %w", ErrPermanent, herr)
		default:
			return nil, fmt.Errorf("%w: %w", ErrTemporary, herr)
		}
	}

	return body, nil
}

// isPermanentStatus reports whether a status will not change on retry.
// 408, 425 and 429 are the 4xx codes worth retrying.
func isPermanentStatus(code int) bool {
	if code < 400 || code >= 500 {
		return false
	}
	switch code {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return true
}

// sanitize flattens a response body for error messages and logs.
func sanitize(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// Healthcheck reports ErrCircuitOpen while the breaker refuses requests.
func (c *Client) Healthcheck(context.Context) error {
	if c.breaker != nil && c.breaker.State() == gobreaker.StateOpen {
		return ErrCircuitOpen
	}
	return nil
}
