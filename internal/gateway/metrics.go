package gateway

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Metrics owns the Prometheus registry and the gateway's collectors.
// It also implements chat.Recorder so the pipeline can report
// generation latency and token reservations.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	llmLatency     prometheus.Histogram
	llmFailures    prometheus.Counter
	tokensReserved prometheus.Counter
}

// NewMetrics builds a registry with the gateway collectors plus the
// standard process and Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chacha",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chacha",
			Name:      "llm_generation_seconds",
			Help:      "Wall time of LLM generation calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		llmFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chacha",
			Name:      "llm_failures_total",
			Help:      "LLM generation calls that returned an error.",
		}),
		tokensReserved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chacha",
			Name:      "tokens_reserved_total",
			Help:      "Estimated tokens debited from session quotas.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.llmLatency,
		m.llmFailures,
		m.tokensReserved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveGeneration implements chat.Recorder.
func (m *Metrics) ObserveGeneration(d time.Duration, failed bool) {
	m.llmLatency.Observe(d.Seconds())
	if failed {
		m.llmFailures.Inc()
	}
}

// AddTokensReserved implements chat.Recorder.
func (m *Metrics) AddTokensReserved(n int) {
	m.tokensReserved.Add(float64(n))
}

// middleware counts requests by chi route pattern and status code.
func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}
