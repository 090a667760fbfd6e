// Package fingerprint derives a deterministic device fingerprint from an
// incoming HTTP request.
//
// The fingerprint is the key material for client-side encryption (see the
// secrets and keyring packages) and the device-binding check of the auth
// session. It hashes the signals a browser page would otherwise read itself:
// user agent, preferred language, platform hints (Sec-CH-UA-Platform,
// Sec-CH-UA-Mobile), screen hints (viewport width/height and DPR), the timezone
// offset reported by the storefront script in X-Timezone-Offset, and the site
// origin (scheme and host, or X-Forwarded-Proto/X-Forwarded-Host with
// WithForwardedHeaders). The Origin request header is not used.
// The first 16 bytes of the SHA-256 digest are returned as 32 hex characters.
//
// Client IP is opt-in through WithClientIP.
//
// # Usage
//
//	fp := fingerprint.Generate(r)
//
//	if !fingerprint.Validate(r, stored) {
//	    // device changed
//	}
//
//	router.Use(fingerprint.Middleware())
//	fp := fingerprint.GetFingerprintFromContext(r.Context())
//
// A nil request yields an empty fingerprint; key derivation maps it to a static
// sentinel so such contexts can never read data written for a real device.
//
// The fingerprint is not a security boundary. All inputs are client controlled.
package fingerprint
