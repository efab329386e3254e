// Package rng provides the explicit pseudo-random stream threaded through
// every sampling and transform call of the generator.
//
// A Stream is seeded once per datatype split and consumed strictly in order:
// point draws, then one gray draw per facet, then the random draws of each
// post-processing stage in declaration order. Two streams built from the same
// seed yield identical sequences, which is what makes datasets reproducible.
//
// A Stream is not safe for concurrent use.
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Stream is a seeded PCG stream.
type Stream struct {
	src *rand.PCG
	r   *rand.Rand
}

// New returns a stream seeded from seed.
func New(seed int64) *Stream {
	s := uint64(seed)
	src := rand.NewPCG(s, s^0xdeadbeef)
	return &Stream{src: src, r: rand.New(src)}
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int { return s.r.IntN(n) }

// IntRange returns a uniform integer in [lo, hi], both ends inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (s *Stream) Float64() float64 { return s.r.Float64() }

// Normal returns one draw from N(mean, std²). A zero std returns mean
// without consuming the stream.
func (s *Stream) Normal(mean, std float64) float64 {
	if std == 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: std, Src: s.src}.Rand()
}
