package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/secrets"
)

// keyCookiePrefix marks session-key cookies so a forged reference cannot point
// the manager at an unrelated cookie.
const keyCookiePrefix = "s_"

// Manager reads and writes device-bound sessions. The encrypted payload lives
// in a randomly named session-key cookie; a fixed reference cookie holds that
// name.
type Manager struct {
	config Config
	log    *slog.Logger
	now    func() time.Time
}

// New creates a new session manager with the given options
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSecure replaces any existing session with a new one for user.
// The lifetime is RememberDays when rememberMe is set and DefaultDays otherwise.
func (m *Manager) SetSecure(ctx context.Context, store cookie.Store, keys keyring.Keyring, user any, rememberMe bool) (*Session, error) {
	m.ClearSecure(ctx, store)

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, errors.Join(ErrEncodeUser, err)
	}

	name, err := generateKeyName()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.New(),
		User:      raw,
		LoginTime: m.now().UTC(),
		DeviceID:  keys.Fingerprint,
	}

	payload, err := secrets.EncryptJSON(keys.Session, sess)
	if err != nil {
		return nil, err
	}

	days := m.config.days(rememberMe)
	if err := store.Set(name, payload, days); err != nil {
		return nil, err
	}
	if err := store.Set(m.config.ReferenceCookie, name, days); err != nil {
		store.Delete(name)
		return nil, err
	}

	m.log.InfoContext(ctx, "session created",
		logger.Component("session"),
		logger.SessionID(sess.ID),
	)
	return sess, nil
}

// GetSecure resolves the reference cookie and decrypts the session it points
// at. Any missing or unreadable piece yields ErrSessionNotFound. A session
// issued to another device yields ErrInvalidSession; in both of those cases
// the cookies are deleted.
func (m *Manager) GetSecure(ctx context.Context, store cookie.Store, keys keyring.Keyring) (*Session, error) {
	name, ok := store.Get(m.config.ReferenceCookie)
	if !ok || name == "" {
		return nil, ErrSessionNotFound
	}
	if !strings.HasPrefix(name, keyCookiePrefix) || name == m.config.ReferenceCookie {
		store.Delete(m.config.ReferenceCookie)
		return nil, ErrSessionNotFound
	}

	payload, ok := store.Get(name)
	if !ok || payload == "" {
		store.Delete(m.config.ReferenceCookie)
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := secrets.DecryptJSON(keys.Session, payload, &sess); err != nil {
		m.ClearSecure(ctx, store)
		return nil, ErrSessionNotFound
	}

	if subtle.ConstantTimeCompare([]byte(sess.DeviceID), []byte(keys.Fingerprint)) != 1 {
		m.log.WarnContext(ctx, "session presented by another device",
			logger.Component("session"),
			logger.SessionID(sess.ID),
		)
		m.ClearSecure(ctx, store)
		return nil, ErrInvalidSession
	}

	return &sess, nil
}

// ClearSecure deletes the session-key cookie and the reference cookie.
func (m *Manager) ClearSecure(_ context.Context, store cookie.Store) {
	if name, ok := store.Get(m.config.ReferenceCookie); ok && strings.HasPrefix(name, keyCookiePrefix) {
		store.Delete(name)
	}
	store.Delete(m.config.ReferenceCookie)
}

// ReferenceCookie returns the configured reference cookie name.
func (m *Manager) ReferenceCookie() string {
	return m.config.ReferenceCookie
}

func generateKeyName() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return keyCookiePrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
