package commerce

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed   = errors.New("commerce.request_failed")
	ErrPermanent       = errors.New("commerce.permanent_failure")
	ErrTemporary       = errors.New("commerce.temporary_failure")
	ErrTimeout         = errors.New("commerce.timeout")
	ErrUnauthorized    = errors.New("commerce.unauthorized")
	ErrAPIStatus       = errors.New("commerce.api_status")
	ErrMalformed       = errors.New("commerce.malformed_response")
	ErrNotFound        = errors.New("commerce.not_found")
	ErrCircuitOpen     = errors.New("commerce.circuit_open")
	ErrNoTokenSource   = errors.New("commerce.no_token_source")
	ErrInvalidConfig   = errors.New("commerce.invalid_config")
	ErrInvalidArgument = errors.New("commerce.invalid_argument")
)

// APIError is a well-formed response whose status is not success.
type APIError struct {
	Action  string
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("commerce %s: status %s", e.Action, e.Status)
	}
	return fmt.Sprintf("commerce %s: status %s: %s", e.Action, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return ErrAPIStatus }

// HTTPError is a non-2xx transport response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("commerce api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("commerce api returned status %d: %s", e.StatusCode, e.Body)
}
