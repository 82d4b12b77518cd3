package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the service's own Prometheus instrumentation. Each instance
// owns its registry so several servers can coexist in one process.
type Metrics struct {
	Registry        *prometheus.Registry
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers request instrumentation and a gauge that reports
// counterValue on every scrape.
func NewMetrics(variant string, counterValue func() int64) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mock_metrics_http_requests_total",
				Help: "Total number of HTTP requests served.",
			},
			[]string{"path", "method", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mock_metrics_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "mock_metrics_counter",
			Help:        "Current value of the mock counter.",
			ConstLabels: prometheus.Labels{"variant": variant},
		},
		func() float64 { return float64(counterValue()) },
	)

	return m
}

func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	m.Requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
