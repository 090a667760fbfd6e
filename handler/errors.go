package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler.nil_response")

// HTTPError carries a status code and a stable machine-readable key. Message,
// when set, is safe to show to the shopper.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// WithMessage returns a copy of e with a shopper-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest         = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized       = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrForbidden          = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound           = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict           = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrPayloadTooLarge    = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "payload_too_large"}
	ErrUnsupportedMedia   = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessable      = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests    = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternal           = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error"}
	ErrBadGateway         = HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway"}
	ErrServiceUnavailable = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
	ErrGatewayTimeout     = HTTPError{Code: http.StatusGatewayTimeout, Key: "gateway_timeout"}
)
