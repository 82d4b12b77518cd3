package generator

import (
	"math/rand/v2"
	"sync"
	"time"

	"mock-metrics/internal/domain"
)

// RandomSampler draws every metric from its profile distribution using
// one shared PRNG.
type RandomSampler struct {
	mu      sync.Mutex
	rng     *rand.Rand
	profile Profile
}

// NewRandomSampler seeds the PRNG with seed, or with the wall clock when
// seed is 0.
func NewRandomSampler(profile Profile, seed uint64) *RandomSampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSampler{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		profile: profile,
	}
}

// Next returns 0 for metrics the profile does not cover.
func (s *RandomSampler) Next(metric domain.Metric) float64 {
	d, ok := s.profile[metric]
	if !ok {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return d.Draw(s.rng)
}
