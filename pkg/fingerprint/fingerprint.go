package fingerprint

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/clientip"
)

// Client hint and custom headers that stand in for the browser-side signals
// (platform, screen, timezone) a page script would read directly.
const (
	HeaderPlatform       = "Sec-CH-UA-Platform"
	HeaderMobile         = "Sec-CH-UA-Mobile"
	HeaderViewportWidth  = "Sec-CH-Viewport-Width"
	HeaderViewportHeight = "Sec-CH-Viewport-Height"
	HeaderDPR            = "Sec-CH-DPR"
	HeaderTimezoneOffset = "X-Timezone-Offset"
)

type options struct {
	withIP        bool
	trustForwards bool
}

// Option tunes which request attributes feed the fingerprint.
type Option func(*options)

// WithClientIP mixes the client IP into the fingerprint. Off by default since
// mobile clients hop networks often and would lose their cart.
func WithClientIP() Option {
	return func(o *options) { o.withIP = true }
}

// WithForwardedHeaders takes the origin from X-Forwarded-Proto and
// X-Forwarded-Host. Enable it only behind a proxy that sets both.
func WithForwardedHeaders() Option {
	return func(o *options) { o.trustForwards = true }
}

// Generate creates a device fingerprint from the HTTP request.
// It combines the user agent, language, platform and screen hints, timezone
// offset and origin into a 32-character hex string.
// A nil request has no client context and yields an empty string.
func Generate(r *http.Request, opts ...Option) string {
	if r == nil {
		return ""
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	components := []string{
		r.UserAgent(),
		r.Header.Get("Accept-Language"),
		r.Header.Get(HeaderPlatform),
		r.Header.Get(HeaderMobile),
		screen(r),
		r.Header.Get(HeaderTimezoneOffset),
		origin(r, o.trustForwards),
	}
	if o.withIP {
		components = append(components, clientip.GetIP(r))
	}

	// Keep positions so that a value cannot shift into another slot.
	combined := strings.Join(components, "|")
	hash := sha256.Sum256([]byte(combined))

	return hex.EncodeToString(hash[:16])
}

// Validate compares the current request fingerprint with a stored fingerprint
// in constant time.
func Validate(r *http.Request, stored string, opts ...Option) bool {
	if stored == "" {
		return false
	}
	current := Generate(r, opts...)
	return subtle.ConstantTimeCompare([]byte(current), []byte(stored)) == 1
}

func screen(r *http.Request) string {
	w := r.Header.Get(HeaderViewportWidth)
	h := r.Header.Get(HeaderViewportHeight)
	dpr := r.Header.Get(HeaderDPR)
	if w == "" && h == "" && dpr == "" {
		return ""
	}
	return w + "x" + h + "@" + dpr
}

// origin is the site origin the browser sees, built from scheme and host the
// same way on every request. The Origin header is ignored: browsers send it on
// POST but not on same-origin GET, which would split one device in two.
func origin(r *http.Request, trustForwards bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if trustForwards {
		if p := firstValue(r.Header.Get("X-Forwarded-Proto")); p != "" {
			scheme = p
		}
		if h := firstValue(r.Header.Get("X-Forwarded-Host")); h != "" {
			host = h
		}
	}
	return strings.ToLower(scheme + "://" + host)
}

// firstValue returns the client-most entry of a comma-separated proxy header.
func firstValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
