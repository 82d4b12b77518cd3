package generator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mock-metrics/internal/counter"
	"mock-metrics/internal/domain"
)

type fixedSampler map[domain.Metric]float64

func (f fixedSampler) Next(metric domain.Metric) float64 {
	return f[metric]
}

func TestGenerator_TickerRounding(t *testing.T) {
	c := counter.New()
	c.Inc()
	c.Inc()

	g := New(domain.VariantTicker, fixedSampler{
		domain.MetricCPU:         41.23456,
		domain.MetricLatency:     119.999,
		domain.MetricRequestRate: 75.005001,
	}, c)

	rec := g.Generate()
	assert.Equal(t, 41.23, rec.CPU)
	assert.Equal(t, 120.0, rec.LatencyMs)
	require.NotNil(t, rec.RequestRate)
	assert.Equal(t, 75.01, *rec.RequestRate)
	assert.Equal(t, int64(2), rec.Counter)
	assert.Nil(t, rec.MemoryMB)
	assert.Nil(t, rec.Timestamp)

	// reading must not advance a ticker-driven counter
	rec = g.Generate()
	assert.Equal(t, int64(2), rec.Counter)
}

func TestGenerator_PerRequest(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := counter.New()

	g := New(domain.VariantPerRequest, fixedSampler{
		domain.MetricCPU:     33.36,
		domain.MetricLatency: 57,
		domain.MetricMemory:  256,
	}, c, WithClock(func() time.Time { return now }))

	rec := g.Generate()
	assert.Equal(t, 33.4, rec.CPU)
	assert.Equal(t, 57.0, rec.LatencyMs)
	require.NotNil(t, rec.MemoryMB)
	assert.Equal(t, 256, *rec.MemoryMB)
	require.NotNil(t, rec.Timestamp)
	assert.Equal(t, now.Unix(), *rec.Timestamp)
	assert.Nil(t, rec.RequestRate)
	assert.Equal(t, int64(1), rec.Counter)

	assert.Equal(t, int64(2), g.Generate().Counter)
	assert.Equal(t, int64(3), g.Generate().Counter)
}

func TestRandomSampler_TickerBounds(t *testing.T) {
	g := New(domain.VariantTicker, NewRandomSampler(TickerProfile(), 42), counter.New())

	for i := 0; i < 5000; i++ {
		rec := g.Generate()
		assert.GreaterOrEqual(t, rec.CPU, 0.0)
		assert.LessOrEqual(t, rec.CPU, 100.0)
		assert.GreaterOrEqual(t, rec.LatencyMs, 1.0)
		require.NotNil(t, rec.RequestRate)
		assert.GreaterOrEqual(t, *rec.RequestRate, 0.0)
	}
}

func TestRandomSampler_PerRequestBounds(t *testing.T) {
	g := New(domain.VariantPerRequest, NewRandomSampler(PerRequestProfile(), 7), counter.New())

	for i := 0; i < 5000; i++ {
		rec := g.Generate()
		assert.GreaterOrEqual(t, rec.CPU, 5.0)
		assert.LessOrEqual(t, rec.CPU, 80.0)
		assert.GreaterOrEqual(t, rec.LatencyMs, 20.0)
		assert.LessOrEqual(t, rec.LatencyMs, 120.0)
		assert.Equal(t, math.Trunc(rec.LatencyMs), rec.LatencyMs, "latency should be an integer")
		require.NotNil(t, rec.MemoryMB)
		assert.GreaterOrEqual(t, *rec.MemoryMB, 100)
		assert.LessOrEqual(t, *rec.MemoryMB, 500)
	}
}

func TestRandomSampler_TickerMean(t *testing.T) {
	s := NewRandomSampler(TickerProfile(), 1)

	const n = 20000
	var sum float64
	for i := 0; i < n; i++ {
		sum += s.Next(domain.MetricCPU)
	}
	assert.InDelta(t, 42.0, sum/n, 0.5)
}

func TestRandomSampler_Seeded(t *testing.T) {
	a := NewRandomSampler(PerRequestProfile(), 99)
	b := NewRandomSampler(PerRequestProfile(), 99)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(domain.MetricMemory), b.Next(domain.MetricMemory))
	}
	assert.Equal(t, 0.0, a.Next(domain.MetricRequestRate), "unknown metric samples as 0")
}

func TestNormal_Clamp(t *testing.T) {
	r := NewRandomSampler(Profile{domain.MetricCPU: Normal{Mean: 500, StdDev: 1, Min: 0, Max: 100}}, 3)
	assert.Equal(t, 100.0, r.Next(domain.MetricCPU))

	r = NewRandomSampler(Profile{domain.MetricCPU: Normal{Mean: -500, StdDev: 1, Min: 1, Max: open}}, 3)
	assert.Equal(t, 1.0, r.Next(domain.MetricCPU))
}
