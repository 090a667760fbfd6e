// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// The cache evicts the least recently used entry once it reaches capacity.
// Entries stored with PutWithTTL become invisible after their TTL and are
// dropped lazily on access or eagerly by Purge.
//
//	c := cache.NewLRUCache[string, []byte](1024)
//	c.PutWithTTL("token", raw, 30*time.Minute)
//	raw, ok := c.Get("token")
//
// An optional eviction callback runs for every removed entry.
package cache
