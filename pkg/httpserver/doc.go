// Package httpserver runs the storefront HTTP handler with graceful shutdown.
//
// Server.Run binds first, so a bad address fails fast with ErrStart, then
// blocks until the context is canceled and drains in-flight requests within
// the shutdown timeout. Signals are the caller's concern (signal.NotifyContext
// in cmd/storefront). Timeouts and the header size cap come from Config
// (HTTP_* environment variables) or functional options:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler serves /health. Without checks it is a liveness probe;
// with named checks (redis ping, commerce circuit state) it reports each
// result as JSON and answers 503 when any fails.
package httpserver
