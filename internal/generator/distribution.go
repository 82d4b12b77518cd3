package generator

import (
	"math"
	"math/rand/v2"

	"mock-metrics/internal/domain"
)

// Distribution draws one bounded value.
type Distribution interface {
	Draw(r *rand.Rand) float64
}

// Normal draws from N(Mean, StdDev) and clamps the result to [Min, Max].
// A NaN bound leaves that side open.
type Normal struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (n Normal) Draw(r *rand.Rand) float64 {
	v := r.NormFloat64()*n.StdDev + n.Mean
	if !math.IsNaN(n.Min) && v < n.Min {
		v = n.Min
	}
	if !math.IsNaN(n.Max) && v > n.Max {
		v = n.Max
	}
	return v
}

// Uniform draws a float from [Min, Max).
type Uniform struct {
	Min float64
	Max float64
}

func (u Uniform) Draw(r *rand.Rand) float64 {
	return u.Min + r.Float64()*(u.Max-u.Min)
}

// UniformInt draws an integer from [Min, Max], both ends inclusive.
type UniformInt struct {
	Min int
	Max int
}

func (u UniformInt) Draw(r *rand.Rand) float64 {
	return float64(u.Min + r.IntN(u.Max-u.Min+1))
}

var open = math.NaN()

// Profile maps each sampled metric to its distribution.
type Profile map[domain.Metric]Distribution

func TickerProfile() Profile {
	return Profile{
		domain.MetricCPU:         Normal{Mean: 42, StdDev: 10, Min: 0, Max: 100},
		domain.MetricLatency:     Normal{Mean: 120, StdDev: 30, Min: 1, Max: open},
		domain.MetricRequestRate: Normal{Mean: 75, StdDev: 15, Min: 0, Max: open},
	}
}

func PerRequestProfile() Profile {
	return Profile{
		domain.MetricCPU:     Uniform{Min: 5, Max: 80},
		domain.MetricLatency: UniformInt{Min: 20, Max: 120},
		domain.MetricMemory:  UniformInt{Min: 100, Max: 500},
	}
}

func ProfileFor(v domain.Variant) Profile {
	if v == domain.VariantPerRequest {
		return PerRequestProfile()
	}
	return TickerProfile()
}
