package storefront

import "net/http"

// handled is returned once the error handler has already written the
// response.
type handled struct{}

func (handled) Render(http.ResponseWriter, *http.Request) error { return nil }
