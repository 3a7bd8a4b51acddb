package deck

import (
	"math/rand/v2"
	"slices"
)

// Deck is the ordered working queue of entry indices for a session.
type Deck []int

// Clone returns an independent copy of the deck.
func (d Deck) Clone() Deck {
	if d == nil {
		return Deck{}
	}
	return slices.Clone(d)
}

// EffectiveSize clamps a requested draw size to the store size. A negative
// request, or one larger than the store, means "study everything".
func EffectiveSize(storeSize, requested int) int {
	if storeSize < 0 {
		return 0
	}
	if requested < 0 || requested > storeSize {
		return storeSize
	}
	return requested
}

// NewRand returns a PCG-backed generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DrawSeeded draws a deck using a generator seeded with seed.
func DrawSeeded(storeSize, requested int, seed uint64) Deck {
	return Draw(NewRand(seed), storeSize, requested)
}

// Draw picks EffectiveSize(storeSize, requested) distinct indices from
// [0, storeSize) uniformly at random, without replacement. The result order is
// the draw order, so every ordered subset of that size is equally likely.
//
// This is a partial Fisher-Yates shuffle: position i is filled with a uniform
// pick from the candidates not yet drawn.
func Draw(r *rand.Rand, storeSize, requested int) Deck {
	n := EffectiveSize(storeSize, requested)
	if n == 0 {
		return Deck{}
	}

	candidates := make([]int, storeSize)
	for i := range candidates {
		candidates[i] = i
	}

	for i := 0; i < n; i++ {
		j := i + r.IntN(storeSize-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return Deck(candidates[:n:n])
}
