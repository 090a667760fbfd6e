package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/storefront/pkg/commerce"
)

const namespace = "storefront"

// Metrics holds the collectors exported by the storefront. Each instance
// owns its registry, so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CommerceRequestsTotal   *prometheus.CounterVec
	CommerceRequestDuration *prometheus.HistogramVec

	TokenFetchesTotal  *prometheus.CounterVec
	TokenFetchDuration prometheus.Histogram

	CartMutationsTotal *prometheus.CounterVec
}

// New creates and registers all collectors. Go runtime and process
// collectors are included when withRuntime is true.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		CommerceRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "commerce",
			Name:      "requests_total",
			Help:      "Commerce API attempts by action and outcome.",
		}, []string{"action", "outcome"}),
		CommerceRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "commerce",
			Name:      "request_duration_seconds",
			Help:      "Commerce API attempt duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),

		TokenFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "fetches_total",
			Help:      "Bearer token fetches by result.",
		}, []string{"result"}),
		TokenFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "fetch_duration_seconds",
			Help:      "Bearer token fetch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),

		CartMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CommerceRequestsTotal,
		m.CommerceRequestDuration,
		m.TokenFetchesTotal,
		m.TokenFetchDuration,
		m.CartMutationsTotal,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry exposes the underlying registry for custom collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// CommerceAttempt matches commerce.WithAttemptHook.
func (m *Metrics) CommerceAttempt(r commerce.AttemptResult) {
	m.CommerceRequestsTotal.WithLabelValues(r.Action, outcome(r.Err)).Inc()
	m.CommerceRequestDuration.WithLabelValues(r.Action).Observe(r.Duration.Seconds())
}

// TokenFetch matches token.WithFetchHook.
func (m *Metrics) TokenFetch(err error, took time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.TokenFetchesTotal.WithLabelValues(result).Inc()
	m.TokenFetchDuration.Observe(took.Seconds())
}

func (m *Metrics) CartMutation(operation string) {
	m.CartMutationsTotal.WithLabelValues(operation).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, commerce.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, commerce.ErrTimeout):
		return "timeout"
	case errors.Is(err, commerce.ErrPermanent):
		return "client_error"
	default:
		return "error"
	}
}
