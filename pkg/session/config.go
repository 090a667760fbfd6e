package session

// Config holds session configuration
type Config struct {
	// ReferenceCookie names the fixed cookie pointing at the per-login
	// session-key cookie.
	ReferenceCookie string `env:"SESSION_REFERENCE_COOKIE" envDefault:"_sref"`

	// RememberDays is the session lifetime when the user asked to be remembered.
	RememberDays int `env:"SESSION_REMEMBER_DAYS" envDefault:"30"`

	// DefaultDays is the session lifetime otherwise.
	DefaultDays int `env:"SESSION_DEFAULT_DAYS" envDefault:"1"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		ReferenceCookie: "_sref",
		RememberDays:    30,
		DefaultDays:     1,
	}
}

func (c Config) days(rememberMe bool) int {
	if rememberMe {
		return c.RememberDays
	}
	return c.DefaultDays
}

// NewFromConfig creates a new Manager from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
