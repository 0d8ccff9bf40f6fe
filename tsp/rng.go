// Package tsp - deterministic random sources.
//
// Determinism: same seed ⇒ identical tours. No time-based sources.
// math/rand.Rand is NOT goroutine-safe; the engine serializes access.
package tsp

import "math/rand"

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
