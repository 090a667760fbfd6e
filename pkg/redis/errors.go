package redis

import "errors"

var (
	ErrDisabled   = errors.New("redis.disabled")
	ErrInvalidURL = errors.New("redis.invalid_url")
	ErrNotReady   = errors.New("redis.not_ready")
	ErrUnhealthy  = errors.New("redis.unhealthy")
)
