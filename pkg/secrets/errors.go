package secrets

import "errors"

var (
	ErrEncryptionFailed    = errors.New("failed to encrypt")
	ErrDecryptionFailed    = errors.New("failed to decrypt")
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
