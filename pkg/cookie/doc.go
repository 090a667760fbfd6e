// Package cookie provides the cookie substrate for client-side state.
//
// The Manager writes and deletes cookies with uniform defaults (path "/",
// SameSite=Lax, day-granular expiry) and marks them Secure whenever the request
// arrived over TLS or behind a proxy reporting https. Reads scan the raw Cookie
// header and return the first exact-name match verbatim.
//
// # Stores
//
// Higher-level packages depend on the small Store interface rather than on
// net/http directly:
//
//   - Jar binds a Manager to one request/response pair; later reads in the same
//     request see earlier writes and deletions.
//   - MemoryStore keeps cookies in process memory for workers and tests.
//
// # Usage
//
//	import "github.com/dmitrymomot/storefront/pkg/cookie"
//
//	m := cookie.NewFromConfig(cfg)
//	jar := cookie.NewJar(m, w, r)
//	_ = jar.Set("c_1f2e3d4c5b6a7980", payload, 30)
//	v, ok := jar.Get("c_1f2e3d4c5b6a7980")
//
// Cookie values are not escaped. Callers are expected to pass cookie-safe values
// (e.g. base64url) and pre-hashed names.
package cookie
