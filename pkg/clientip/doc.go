// Package clientip extracts the originating client IP from a request that may
// have passed through CDNs or reverse proxies.
//
// Headers are consulted in priority order (DefaultHeaders, or a custom list via
// FromHeaders); the first syntactically valid address wins and RemoteAddr is the
// fallback. Invalid values are skipped rather than returned.
//
// Header values are client controlled unless a trusted proxy strips them, so the
// result is suitable for logging and fingerprinting, not for access control.
package clientip
