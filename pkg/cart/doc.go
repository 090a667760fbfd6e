// Package cart implements the client-side shopping cart.
//
// A Store lives for one request: it is loaded from an encrypted cookie
// snapshot, mutated by the request's action and persisted back. Lines are
// unique per product id; adding an existing product merges quantities, and a
// line whose quantity drops to zero is removed.
//
// Totals are always derived, never stored independently of the items:
//
//	total        = Σ qty × price
//	evPointTotal = Σ qty × evPoint   (0 while unauthenticated)
//
// The loyalty discount (evPoint) applies only to authenticated shoppers. Each
// line retains the product data it was built from so that SetAuthenticated
// can recompute the discount when the shopper logs in or out.
//
// Malformed products are rejected with ErrInvalidProduct and non-positive
// quantities with ErrInvalidQuantity; both wrap validator.ValidationErrors.
//
// Snapshot persistence is pluggable through Persister. CookiePersister stores
// the snapshot AES-encrypted under a fingerprint-derived cookie name for
// DefaultCookieDays. Unreadable snapshots are deleted on Load; failed writes
// are logged and do not undo the in-memory change.
package cart
