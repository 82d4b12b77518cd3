package generator

import (
	"math"
	"time"

	"mock-metrics/internal/counter"
	"mock-metrics/internal/domain"
)

type Generator struct {
	variant domain.Variant
	sampler domain.Sampler
	counter *counter.Counter
	now     func() time.Time
}

type Option func(*Generator)

// WithClock overrides the wall clock used for per-request timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(variant domain.Variant, sampler domain.Sampler, c *counter.Counter, opts ...Option) *Generator {
	g := &Generator{
		variant: variant,
		sampler: sampler,
		counter: c,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Variant() domain.Variant {
	return g.variant
}

// Generate builds one record. In the per-request variant it also
// advances the counter.
func (g *Generator) Generate() domain.MetricsRecord {
	if g.variant == domain.VariantPerRequest {
		return g.perRequest()
	}
	return g.ticker()
}

func (g *Generator) ticker() domain.MetricsRecord {
	rate := round(g.sampler.Next(domain.MetricRequestRate), 2)
	return domain.MetricsRecord{
		CPU:         round(g.sampler.Next(domain.MetricCPU), 2),
		LatencyMs:   round(g.sampler.Next(domain.MetricLatency), 2),
		RequestRate: &rate,
		Counter:     g.counter.Value(),
	}
}

func (g *Generator) perRequest() domain.MetricsRecord {
	memory := int(math.Round(g.sampler.Next(domain.MetricMemory)))
	ts := g.now().Unix()
	return domain.MetricsRecord{
		CPU:       round(g.sampler.Next(domain.MetricCPU), 1),
		LatencyMs: math.Round(g.sampler.Next(domain.MetricLatency)),
		MemoryMB:  &memory,
		Counter:   g.counter.Inc(),
		Timestamp: &ts,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
