package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrMissingContentType   = errors.New("binder.missing_content_type")
	ErrBodyTooLarge         = errors.New("binder.body_too_large")
	ErrFailedToParseJSON    = errors.New("binder.invalid_json")
	ErrFailedToParseQuery   = errors.New("binder.invalid_query")
	ErrFailedToParsePath    = errors.New("binder.invalid_path")
	ErrBinderNotApplicable  = errors.New("binder.not_applicable")
)
