// Package commerce is a client for the remote commerce API that backs the
// storefront: catalog search, product detail, store listing and customer
// login.
//
// Every action is a form-encoded POST to one endpoint carrying timestamp,
// token, com and action fields plus action-specific ones (condition, fields,
// storeid, limit, sourcename, method, strstr). Responses are JSON envelopes
// whose status is "1" on success with the payload in data or data.data.
//
// Transient failures (network errors, timeouts, 5xx, 408, 425, 429) are
// retried with exponential backoff; other 4xx responses fail immediately. A
// gobreaker circuit breaker stops hammering an unhealthy upstream. Bearer
// tokens come from a TokenSource, normally a token.Service wrapping Login:
//
//	api, _ := commerce.New(cfg)
//	tokens := token.New(api.Login)
//	catalog, _ := commerce.New(cfg, commerce.WithTokenSource(tokens))
//	products, err := catalog.SearchProducts(ctx, commerce.ProductQuery{Search: "kopi"})
package commerce
