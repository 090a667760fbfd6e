package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// JSONResponse is the envelope every endpoint answers with.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONMeta sets one meta key. Nil values are skipped.
func WithJSONMeta(key string, value any) JSONOption {
	return func(r *jsonResponse) {
		if value == nil {
			return
		}
		if r.body.Meta == nil {
			r.body.Meta = make(map[string]any)
		}
		r.body.Meta[key] = value
	}
}

// JSON renders v as data. An error value is rendered as JSONError would.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error field with the status it maps to.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := errorToDetail(err)
	r := &jsonResponse{status: status, body: JSONResponse{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorToDetail maps validation errors to 422 with per-field details and
// HTTPError to its own code. Anything else is a 500 whose message is not
// exposed.
func errorToDetail(err error) (int, *ErrorDetail) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: "The request contains invalid fields.",
			Details: verrs.Map(),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: msg}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternal.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
