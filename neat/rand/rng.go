// Package rand provides the single explicit, seeded random source threaded
// through population, species, and genome operations. Unlike the package
// global math/rand source, an RNG instance never shares state across
// concurrent callers: the evolutionary loop owns exactly one of these and
// passes it down by reference, which is what makes a run reproducible from
// its seed alone.
package rand

import "math/rand"

// RNG is an explicit, seeded random number source.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns a new RNG seeded with the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// NormFloat64 returns a normally distributed float64 with mean 0 and
// standard deviation 1, suitable for scaling into a weight perturbation.
func (g *RNG) NormFloat64() float64 {
	return g.r.NormFloat64()
}

// UniformFloat64 returns a pseudo-random float64 in [min, max).
func (g *RNG) UniformFloat64(min, max float64) float64 {
	return min + g.r.Float64()*(max-min)
}

// IntN returns a pseudo-random int in [0, n). It panics if n <= 0.
func (g *RNG) IntN(n int) int {
	return g.r.Intn(n)
}

// Bool returns true with probability p, false otherwise.
func (g *RNG) Bool(p float64) bool {
	return g.r.Float64() < p
}

// Sign returns +1 or -1 with equal probability.
func (g *RNG) Sign() float64 {
	if g.r.Intn(2) == 0 {
		return -1
	}
	return 1
}

// RouletteThrow performs a single throw onto a roulette wheel whose segments
// are sized by the given (not necessarily normalized) weights. It returns
// the index of the selected segment, or -1 if weights is empty or all zero.
func (g *RNG) RouletteThrow(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}

	throw := g.r.Float64() * total
	accumulator := 0.0
	for i, w := range weights {
		accumulator += w
		if throw <= accumulator {
			return i
		}
	}
	return -1
}

// Shuffle pseudo-randomly permutes n elements via the swap callback, in the
// manner of sort.Interface-based shuffles.
func (g *RNG) Shuffle(n int, swap func(i, j int)) {
	g.r.Shuffle(n, swap)
}
