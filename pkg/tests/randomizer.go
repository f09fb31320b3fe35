package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Intn    func(n int) int
	Int63n  func(n int64) int64
}

func NewRandomizer() Randomizer {
	return NewSeededRandomizer(time.Now().Unix())
}

// NewSeededRandomizer is NewRandomizer with a fixed seed for reproducible
// failures.
func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
		Int63n:  random.Int63n,
	}
}

// Pick returns a random element of items.
func Pick[T any](r Randomizer, items []T) T {
	return items[r.Intn(len(items))]
}
