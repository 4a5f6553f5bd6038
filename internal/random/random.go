// internal/random/random.go
//
// Random source used by the round engine.
// Responsibilities:
//   - Source: the narrow interface generators draw from (injectable, seedable).
//   - Between: uniform integer in an inclusive range.
//   - Shuffle / ShuffleInPlace: unbiased Fisher–Yates permutations.
//
// Notes:
//   - Production sessions use a PCG source seeded from crypto/rand.
//   - Tests pass NewSeeded(n) for reproducible rounds.

package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source is the subset of *rand.Rand the engine needs.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a PCG-backed source seeded from crypto/rand.
func New() *rand.Rand {
	var b [16]byte
	_, _ = crand.Read(b[:])
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// NewSeeded returns a deterministic source.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a uniform integer in [lo, hi]. Panics if hi < lo.
func Between(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}

// Shuffle returns a shuffled copy of in; in is left untouched.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	ShuffleInPlace(src, out)
	return out
}

// ShuffleInPlace permutes s uniformly (Fisher–Yates, high to low).
func ShuffleInPlace[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
