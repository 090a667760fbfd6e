package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders lists proxy headers consulted by GetIP, highest priority first.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client's IP address using DefaultHeaders and falling back
// to RemoteAddr.
func GetIP(r *http.Request) string {
	return FromHeaders(r, DefaultHeaders...)
}

// FromHeaders returns the first valid IP found in the given headers, in order.
// Comma-separated lists (X-Forwarded-For) yield their first valid entry.
// Falls back to the request's RemoteAddr.
func FromHeaders(r *http.Request, headers ...string) string {
	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
