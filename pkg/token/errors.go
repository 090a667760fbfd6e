package token

import "errors"

var (
	ErrFetchFailed = errors.New("token.fetch_failed")
	ErrEmptyToken  = errors.New("token.empty")
)
