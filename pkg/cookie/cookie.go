package cookie

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const day = 24 * time.Hour

// MaxSize is the largest name=value pair browsers reliably store. Larger
// cookies are dropped by the browser without any signal to the server.
const MaxSize = 4096

func checkSize(name, value string) error {
	if n := len(name) + 1 + len(value); n > MaxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrValueTooLarge, name, n, MaxSize)
	}
	return nil
}

type Manager struct {
	defaults Options
}

func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(&defaults)
	}

	return &Manager{defaults: defaults}
}

// Set writes a cookie that expires after the given number of days.
// A non-positive days value produces a session cookie. Values that would not
// fit in MaxSize are rejected with ErrValueTooLarge and nothing is written.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, name, value string, days int) error {
	if name == "" || strings.ContainsAny(name, "=; \t\r\n") {
		return ErrInvalidName
	}
	if err := checkSize(name, value); err != nil {
		return err
	}

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		Secure:   m.defaults.Secure || isSecureRequest(r),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	}
	if days > 0 {
		c.MaxAge = days * int(day/time.Second)
		c.Expires = time.Now().Add(time.Duration(days) * day).UTC()
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the first cookie in the raw Cookie header whose name matches
// exactly.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	if v, ok := Lookup(r, name); ok {
		return v, nil
	}
	return "", ErrCookieNotFound
}

// Delete overwrites the cookie with an already expired one.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// Lookup scans every Cookie header of the request. Values are returned
// verbatim, without unquoting or validation.
func Lookup(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, line := range r.Header.Values("Cookie") {
		for part := range strings.SplitSeq(line, ";") {
			part = strings.TrimLeft(part, " ")
			k, v, found := strings.Cut(part, "=")
			if found && k == name {
				return v, true
			}
		}
	}
	return "", false
}

func isSecureRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
