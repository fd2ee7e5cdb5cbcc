// Package mtrand reproduces the legacy numpy RandomState shuffling on top of
// a 32-bit Mersenne Twister, so seeded permutations match the ones Python
// tooling produces for the same seed.
package mtrand

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// Rand draws bounded integers the way numpy's legacy generator does.
type Rand struct {
	src *prng.MT19937
}

// New returns a Rand seeded like RandomState(seed).
func New(seed uint32) *Rand {
	src := prng.NewMT19937()
	src.Seed(uint64(seed))
	return &Rand{src: src}
}

// Interval returns a uniform integer in [0, max] by masking 32-bit draws
// and rejecting values above max.
func (r *Rand) Interval(max uint32) uint32 {
	if max == 0 {
		return 0
	}
	mask := max
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	for {
		if v := r.src.Uint32() & mask; v <= max {
			return v
		}
	}
}

// Shuffle permutes n elements in place with swap, walking from the last
// element down and swapping each with a draw from [0, i].
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(r.Interval(uint32(i)))
		swap(i, j)
	}
}

// Perm returns a shuffled copy of [0, n).
func (r *Rand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	r.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Permutation is RandomState(seed).permutation(n).
func Permutation(n int, seed uint32) []int {
	return New(seed).Perm(n)
}
