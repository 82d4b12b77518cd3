package domain

type Variant string

const (
	// VariantTicker samples normal distributions and reports a counter
	// advanced by a background ticker.
	VariantTicker Variant = "ticker"
	// VariantPerRequest samples uniform distributions and advances the
	// counter on every generated record.
	VariantPerRequest Variant = "per-request"
)

func (v Variant) Valid() bool {
	return v == VariantTicker || v == VariantPerRequest
}

type Metric string

const (
	MetricCPU         Metric = "cpu"
	MetricLatency     Metric = "latency_ms"
	MetricRequestRate Metric = "request_rate"
	MetricMemory      Metric = "memory_mb"
)

type MetricsRecord struct {
	CPU         float64  `json:"cpu"`
	LatencyMs   float64  `json:"latency_ms"`
	RequestRate *float64 `json:"request_rate,omitempty"`
	MemoryMB    *int     `json:"memory_mb,omitempty"`
	Counter     int64    `json:"counter"`
	Timestamp   *int64   `json:"timestamp,omitempty"`
}

// Sampler produces the next raw value for a metric. Bounds are the
// sampler's concern, rounding is not.
type Sampler interface {
	Next(metric Metric) float64
}

type MetricsSource interface {
	Generate() MetricsRecord
}
