package kvstore

import "errors"

var (
	ErrNotFound    = errors.New("kvstore.not_found")
	ErrEmptyKey    = errors.New("kvstore.empty_key")
	ErrBackend     = errors.New("kvstore.backend_failed")
	ErrEncodeValue = errors.New("kvstore.encode_failed")
)
