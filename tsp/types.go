// Package tsp - sentinel errors and the distance-table contract shared by
// the tour helpers.
//
// Design:
//   - No logging, no panics on user input; only the sentinels below.
//   - Tours are closed index sequences: len == n+1, tour[0] == tour[n].
package tsp

import "errors"

var (
	// ErrDimensionMismatch indicates a tour whose length, closure or
	// vertex multiset does not match the city count.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrVertexOutOfRange indicates a tour index outside [0, n).
	ErrVertexOutOfRange = errors.New("tsp: vertex out of range")

	// ErrIncompleteGraph indicates a ±Inf distance on a tour edge.
	ErrIncompleteGraph = errors.New("tsp: incomplete distance table")

	// ErrNegativeWeight indicates a NaN or negative distance on a tour edge.
	ErrNegativeWeight = errors.New("tsp: negative or NaN distance")
)

// Distances is the read side of a square distance table. *matrix.Dense
// satisfies it; so can a lazily computed table.
type Distances interface {
	Rows() int
	At(i, j int) (float64, error)
}
