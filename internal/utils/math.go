package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Random is the source used for game outcomes. A fresh one is created per
// operation; outcomes never depend on state shared between calls.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a generator seeded from the OS entropy source.
func NewRandom() Random {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to the runtime source
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewChaCha8(seed)) //nolint:gosec // Game logic randomness, not security critical
}

// NewSeededRandom returns a deterministic generator, for tests and replays.
func NewSeededRandom(seed uint64) Random {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return rand.New(rand.NewChaCha8(s)) //nolint:gosec // Game logic randomness, not security critical
}

// RandomIntIn returns an integer in [lo, hi] drawn from r.
func RandomIntIn(r Random, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
