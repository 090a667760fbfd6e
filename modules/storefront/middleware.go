package storefront

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/storefront/pkg/clientip"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// RequestLogger logs one line per request once it has been served. Server
// errors are logged at error level.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.StatusCode(status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
				slog.String("client_ip", clientip.GetIP(r)),
				logger.Component("http"),
			)
		})
	}
}
