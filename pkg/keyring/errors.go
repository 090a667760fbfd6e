package keyring

import "errors"

var (
	ErrDerive       = errors.New("keyring.derive_failed")
	ErrNotInContext = errors.New("keyring.not_in_context")
)
