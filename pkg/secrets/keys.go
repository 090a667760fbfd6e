package secrets

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// SentinelFingerprint stands in for the device fingerprint when there is no
	// client context to derive one from. Data encrypted under a real fingerprint
	// never decrypts under the sentinel.
	SentinelFingerprint = "no-client-context"

	saltInfo = "storefront-secrets-v1"
)

// Purpose labels separate keys derived from the same fingerprint.
const (
	PurposeCart    = "cart"
	PurposeSession = "session"
	PurposeStorage = "storage"
)

// Key is a derived AES-256 key.
type Key [KeySize]byte

// IsZero reports whether the key was never derived.
func (k Key) IsZero() bool {
	return k == Key{}
}

// DeriveKey derives a purpose-bound key from a device fingerprint.
func DeriveKey(fingerprint, purpose string) (Key, error) {
	if fingerprint == "" {
		fingerprint = SentinelFingerprint
	}

	var key Key
	r := hkdf.New(sha256.New, []byte(fingerprint), []byte(saltInfo), []byte(purpose))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return Key{}, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// CookieName returns a stable 16-character name for a fingerprint and purpose,
// used to keep client-side entries from colliding with unrelated cookies.
func CookieName(fingerprint, purpose string) string {
	if fingerprint == "" {
		fingerprint = SentinelFingerprint
	}
	sum := sha256.Sum256([]byte(purpose + "|" + fingerprint))
	return hex.EncodeToString(sum[:8])
}
