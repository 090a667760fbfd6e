package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/secrets"
)

// envelope is the stored shape: the caller's JSON value plus the write time,
// encrypted as a whole.
type envelope struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

// Vault stores encrypted, timestamped JSON values under names derived from a
// keyring, so two devices never share an entry.
type Vault struct {
	backend Backend
	keys    keyring.Keyring
	now     func() time.Time
}

type VaultOption func(*Vault)

func WithVaultClock(now func() time.Time) VaultOption {
	return func(v *Vault) { v.now = now }
}

func NewVault(backend Backend, keys keyring.Keyring, opts ...VaultOption) *Vault {
	v := &Vault{backend: backend, keys: keys, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Put stores value under name. A positive ttl also bounds the backend entry.
func (v *Vault) Put(ctx context.Context, name string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncodeValue, err)
	}
	ct, err := secrets.EncryptJSON(v.keys.Storage, envelope{Value: raw, Timestamp: v.now().UnixMilli()})
	if err != nil {
		return err
	}
	return v.backend.Set(ctx, v.keys.StorageName(name), []byte(ct), ttl)
}

// Fetch decodes the value stored under name into dst. Entries older than
// maxAge (when positive) and entries that cannot be decrypted are removed and
// reported as ErrNotFound. It returns the time the value was written.
func (v *Vault) Fetch(ctx context.Context, name string, dst any, maxAge time.Duration) (time.Time, error) {
	key := v.keys.StorageName(name)
	raw, err := v.backend.Get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}

	var env envelope
	if err := secrets.DecryptJSON(v.keys.Storage, string(raw), &env); err != nil {
		_ = v.backend.Delete(ctx, key)
		return time.Time{}, ErrNotFound
	}

	written := time.UnixMilli(env.Timestamp)
	if maxAge > 0 && v.now().Sub(written) >= maxAge {
		_ = v.backend.Delete(ctx, key)
		return time.Time{}, ErrNotFound
	}

	if err := json.Unmarshal(env.Value, dst); err != nil {
		_ = v.backend.Delete(ctx, key)
		return time.Time{}, ErrNotFound
	}
	return written, nil
}

// Remove deletes the entry stored under name.
func (v *Vault) Remove(ctx context.Context, name string) error {
	return v.backend.Delete(ctx, v.keys.StorageName(name))
}
