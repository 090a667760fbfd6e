// Package secrets wraps symmetric encryption of small JSON payloads that are
// persisted on the client side (cookies, local key-value storage).
//
// Keys are derived from a device fingerprint with HKDF-SHA-256 and a purpose
// label, so the cart, the auth session and the local storage each get their own
// key for the same device. Payloads are JSON-encoded and encrypted with AES-256 in
// CBC mode with PKCS#7 padding. The random IV is prepended to the ciphertext and
// the result is base64url-encoded without padding, which keeps it safe to store
// in a cookie value as is.
//
// The key material is derived from attributes the client itself sends, so this is
// anti-tampering obfuscation, not confidentiality or access control: a moved or
// edited cookie becomes unreadable, but anyone who can reproduce the fingerprint
// can reproduce the key.
//
// # Usage
//
//	key, err := secrets.DeriveKey(fp, secrets.PurposeCart)
//	if err != nil {
//	    return err
//	}
//
//	ct, err := secrets.EncryptJSON(key, snapshot)
//	if err != nil {
//	    return err // wraps ErrEncryptionFailed
//	}
//
//	var restored Snapshot
//	if err := secrets.DecryptJSON(key, ct, &restored); err != nil {
//	    // ErrDecryptionFailed: treat as "no usable data"
//	}
//
// # Error Handling
//
// Encryption failures wrap ErrEncryptionFailed and are meant to be propagated.
// Every decryption failure, whatever the cause, is reported as the single
// ErrDecryptionFailed sentinel so callers cannot (and need not) tell a tampered
// value from a truncated or foreign one.
package secrets
