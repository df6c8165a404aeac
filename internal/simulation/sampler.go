package simulation

import (
	"math"
	"math/rand"
	"time"
)

// Sampler draws normally distributed values.
type Sampler interface {
	Normal(mean, stdDev float64) float64
}

// BoxMuller derives normal samples from a seedable uniform source.
type BoxMuller struct {
	rng *rand.Rand
}

// NewSampler creates a Box-Muller sampler. A zero seed falls back to the wall clock.
func NewSampler(seed int64) *BoxMuller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &BoxMuller{rng: rand.New(rand.NewSource(seed))}
}

// Normal returns mean + stdDev*z with z = sqrt(-2 ln u1) * cos(2 pi u2).
func (b *BoxMuller) Normal(mean, stdDev float64) float64 {
	// u1 in (0, 1] so the logarithm stays finite.
	u1 := 1 - b.rng.Float64()
	u2 := b.rng.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	return mean + stdDev*z
}
