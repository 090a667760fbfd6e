package binder

import "net/http"

// Path binds route parameters to fields tagged `path:"name"`, reading them
// through extractor (chi.URLParam for chi routers).
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindFunc(v, "path", func(name string) []string {
			if s := extractor(r, name); s != "" {
				return []string{s}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}
