// Package handler adapts typed request handlers to net/http and renders the
// storefront's JSON envelope:
//
//	{"data": ..., "meta": {...}, "error": {"code": "...", "message": "...", "details": {...}}}
//
// Wrap binds the request with the configured binders, runs decorators, calls
// the handler and renders its Response. Errors from any step reach the
// ErrorHandler, which maps them to HTTP statuses: validator.ValidationErrors
// become 422 with per-field details, HTTPError uses its own code, binder
// failures become 400/413/415 and everything else is a 500 with a generic
// message. Modules pass ErrorMappers to translate their domain errors.
package handler
