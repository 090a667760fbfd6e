package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithReferenceCookie sets the reference cookie name
func WithReferenceCookie(name string) Option {
	return func(m *Manager) {
		m.config.ReferenceCookie = name
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock sets the time source used for LoginTime.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}
