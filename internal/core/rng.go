package core

import (
	"fmt"
	"math/rand"
)

// RNG wraps math/rand.Rand with the seed it was created from so a session can
// be replayed. Not safe for concurrent use; sessions are single-threaded.
type RNG struct {
	seed int64
	src  *rand.Rand
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// IntRange returns a uniform integer in [lo, hi).
// Panics if hi <= lo; callers must guard the bounds.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		panic(fmt.Sprintf("core: IntRange(%d, %d): empty range", lo, hi))
	}
	return lo + r.src.Intn(hi-lo)
}

// Intn returns a uniform integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.IntRange(0, n)
}

// Shuffle permutes s in place with Fisher–Yates.
func Shuffle[T any](r *RNG, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly chosen element of s. Panics on an empty slice.
func Pick[T any](r *RNG, s []T) T {
	return s[r.Intn(len(s))]
}
