package keyring

import (
	"errors"

	"github.com/dmitrymomot/storefront/pkg/secrets"
)

// Keyring holds the per-device key material derived once per request and
// passed to the stores that need it.
type Keyring struct {
	// Fingerprint is the raw device fingerprint; empty means no client context.
	Fingerprint string

	Cart    secrets.Key
	Session secrets.Key
	Storage secrets.Key

	// CartCookie is the fingerprint-derived name of the cart snapshot cookie.
	CartCookie string
}

// Derive builds a Keyring for the given fingerprint.
func Derive(fingerprint string) (Keyring, error) {
	cart, err := secrets.DeriveKey(fingerprint, secrets.PurposeCart)
	if err != nil {
		return Keyring{}, errors.Join(ErrDerive, err)
	}
	session, err := secrets.DeriveKey(fingerprint, secrets.PurposeSession)
	if err != nil {
		return Keyring{}, errors.Join(ErrDerive, err)
	}
	storage, err := secrets.DeriveKey(fingerprint, secrets.PurposeStorage)
	if err != nil {
		return Keyring{}, errors.Join(ErrDerive, err)
	}

	return Keyring{
		Fingerprint: fingerprint,
		Cart:        cart,
		Session:     session,
		Storage:     storage,
		CartCookie:  "c_" + secrets.CookieName(fingerprint, secrets.PurposeCart),
	}, nil
}

// HasClientContext reports whether the keyring was derived from a real
// fingerprint rather than the sentinel.
func (k Keyring) HasClientContext() bool {
	return k.Fingerprint != ""
}

// StorageName returns a fingerprint-scoped name for a local storage entry.
func (k Keyring) StorageName(name string) string {
	return "s_" + secrets.CookieName(k.Fingerprint, secrets.PurposeStorage+":"+name)
}
