// Package session stores the shopper's authenticated identity in encrypted,
// device-bound cookies.
//
// A session is written as two cookies: a randomly named session-key cookie
// holding the encrypted {id, user, loginTime, deviceId} payload, and a fixed
// reference cookie (default "_sref") whose value is the session-key cookie
// name. SetSecure always clears the previous session first, so sessions never
// stack.
//
// The payload is encrypted with the keyring's session key, which is derived
// from the device fingerprint, and the stored device id is compared with the
// current fingerprint on every read. This makes moved or tampered cookies
// unreadable. It is anti-tampering, not access control: the key material comes
// from client-visible request attributes.
//
// # Usage
//
//	mgr := session.NewFromConfig(cfg)
//	router.Use(cookies.Middleware, keyring.Middleware(log), mgr.Middleware)
//
//	jar, _ := cookie.JarFromContext(r.Context())
//	sess, err := mgr.SetSecure(ctx, jar, keys, user, rememberMe)
//
//	if session.IsAuthenticated(r.Context()) { ... }
package session
