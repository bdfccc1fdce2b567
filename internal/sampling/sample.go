package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"vadset/internal/dataset"
)

// DefaultSeed is the seed used when none is configured. It fixes the
// selection across runs of vadset; it does not reproduce selections made by
// other tools with the same seed.
const DefaultSeed uint64 = 42

// ErrInvalidCount is returned for negative sample sizes.
var ErrInvalidCount = errors.New("sample count must not be negative")

// NewRand returns the generator used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Sample returns n distinct elements of items chosen uniformly at random
// without replacement. The input slice is not modified. Selection order is
// part of the result: callers process samples in the order returned.
func Sample[T any](items []T, n int, seed uint64) ([]T, error) {
	return SampleWith(NewRand(seed), items, n)
}

// SampleWith is Sample with an explicit generator.
func SampleWith[T any](rng *rand.Rand, items []T, n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidCount
	}
	if n > len(items) {
		return nil, fmt.Errorf("%w: requested %d, have %d", dataset.ErrInsufficientCandidates, n, len(items))
	}

	pool := make([]T, len(items))
	copy(pool, items)

	// Partial Fisher-Yates: the first n slots end up holding the sample.
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n], nil
}
