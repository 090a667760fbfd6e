// Package kvstore is the local key-value layer for small pieces of client
// state that do not belong in the cart cookie: the cached API bearer token and
// promotional flags.
//
// Backends:
//
//   - Memory: process-local, on top of pkg/cache with per-entry expiry.
//   - Redis: shared between instances, on go-redis v9 with a key prefix.
//
// Vault adds the storefront envelope on top of a Backend: every value is
// wrapped as {value, timestamp}, encrypted with the keyring's storage key and
// stored under a fingerprint-derived name. Fetch enforces a maximum age and
// self-heals by deleting expired or unreadable entries.
//
//	vault := kvstore.NewVault(kvstore.NewMemory(10_000), keys)
//	_ = vault.Put(ctx, "modal", true, 24*time.Hour)
//	var dismissed bool
//	_, err := vault.Fetch(ctx, "modal", &dismissed, 24*time.Hour)
package kvstore
