package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// ErrorMapper translates a domain error into an HTTPError, or returns nil
// when it does not recognise err.
type ErrorMapper func(err error) error

// NewErrorHandler renders errors as JSON envelopes. Mappers run in order and
// the first non-nil result decides the response; binder errors are mapped by
// default. Server errors are logged at error level, client errors at debug.
func NewErrorHandler[C Context](log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[C] {
	if log == nil {
		log = slog.Default()
	}
	mappers = append(mappers, mapBinderError)

	return func(ctx C, err error) {
		mapped := err
		if validator.ExtractValidationErrors(err) == nil {
			for _, m := range mappers {
				if out := m(err); out != nil {
					mapped = out
					break
				}
			}
		}

		resp := JSONError(mapped).(*jsonResponse)
		r := ctx.Request()
		level := slog.LevelDebug
		if resp.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Error(err),
			logger.StatusCode(resp.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}

func mapBinderError(err error) error {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrPayloadTooLarge
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMedia
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return ErrBadRequest.WithMessage("The request could not be read.")
	}
	return nil
}
