package usage

import "math/rand/v2"

// Source is the randomness the generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n). n must be > 0.
	IntN(n int) int
	// Shuffle permutes n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a PCG-backed Source. Equal seeds give equal sequences.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed picks a seed for runs that did not ask for one.
func RandomSeed() uint64 { return rand.Uint64() }
