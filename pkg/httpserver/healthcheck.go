package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Check is a named readiness probe.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheckHandler answers liveness and readiness probes with JSON.
// With no checks it always reports "ok". Otherwise every check runs
// concurrently under timeout; any failure turns the response into 503 with
// the failing check's error in the report.
func HealthCheckHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		report := healthReport{Status: "ok"}

		if len(checks) > 0 {
			ctx := r.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			report.Checks = make(map[string]string, len(checks))
			var (
				mu sync.Mutex
				wg sync.WaitGroup
			)
			for _, c := range checks {
				wg.Add(1)
				go func() {
					defer wg.Done()
					result := "ok"
					if err := c.Probe(ctx); err != nil {
						log.WarnContext(ctx, "readiness check failed", slog.String("check", c.Name), logger.Error(err))
						result = err.Error()
					}
					mu.Lock()
					report.Checks[c.Name] = result
					if result != "ok" {
						report.Status = "unavailable"
					}
					mu.Unlock()
				}()
			}
			wg.Wait()
		}

		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
