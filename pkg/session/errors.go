package session

import "errors"

var (
	// ErrInvalidSession indicates the session was issued to another device
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionNotFound indicates no readable session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates the session-key name could not be generated
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrEncodeUser indicates the user payload is not JSON-serializable
	ErrEncodeUser = errors.New("session.encode_user_failed")

	// ErrNoCookieJar indicates the request has no cookie jar in its context
	ErrNoCookieJar = errors.New("session.no_cookie_jar")
)
