// Package metrics exports storefront Prometheus collectors: HTTP traffic by
// route, commerce API attempts, bearer token fetches and cart mutations.
//
// The collector methods match the hook signatures of the packages they
// observe:
//
//	m := metrics.New(true)
//	api, _ := commerce.New(cfg, commerce.WithAttemptHook(m.CommerceAttempt))
//	tokens := token.New(api.Login, token.WithFetchHook(m.TokenFetch))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
package metrics
