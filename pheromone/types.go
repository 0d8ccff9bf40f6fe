// Package pheromone - keys, constants and sentinels.
package pheromone

import "errors"

const (
	// InitialLevel is the uniform level every edge starts with.
	InitialLevel = 1.0

	// Floor is returned by Level for absent or fully evaporated edges.
	// It keeps every edge selectable so desirability sums never collapse to 0.
	Floor = 1e-4
)

// ErrInvalidInput is returned for negative city counts, rho outside [0,1],
// negative or non-finite deposit amounts and out-of-range edges.
var ErrInvalidInput = errors.New("pheromone: invalid input")

// EdgeKey identifies an unordered city pair in canonical form (A < B).
type EdgeKey struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Key returns the canonical EdgeKey for the pair (a, b): Key(a,b) == Key(b,a).
func Key(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Edge is a key with its stored level, as returned by Snapshot.
type Edge struct {
	Key   EdgeKey `json:"key"`
	Level float64 `json:"level"`
}

// pairCount returns n·(n−1)/2.
func pairCount(n int) int {
	return n * (n - 1) / 2
}
