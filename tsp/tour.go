// Package tsp - structural helpers for closed tours.
//
// Provided helpers:
//   - ValidateTour: enforce Hamiltonian-cycle invariants for any start city.
//   - CopyTour: independent copy, nil-preserving.
//
// Complexity: O(n) time, O(n) space.
package tsp

import "fmt"

// ValidateTour enforces, for n cities:
//
//	len(tour) == n+1, tour[0] == tour[n],
//	each city v ∈ [0, n) appears exactly once in tour[0:n].
//
// Any start city is accepted. n must be at least 2.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	if n < 2 || len(tour) != n+1 {
		return fmt.Errorf("%w: tour length %d for %d cities", ErrDimensionMismatch, len(tour), n)
	}

	seen := make([]bool, n)
	var (
		i int
		v int
	)
	for i = 0; i <= n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return fmt.Errorf("%w: city %d at position %d", ErrVertexOutOfRange, v, i)
		}
		if i == n {
			break
		}
		if seen[v] {
			return fmt.Errorf("%w: city %d visited twice", ErrDimensionMismatch, v)
		}
		seen[v] = true
	}
	if tour[0] != tour[n] {
		return fmt.Errorf("%w: tour is not closed (%d != %d)", ErrDimensionMismatch, tour[0], tour[n])
	}
	return nil
}

// CopyTour returns an independent copy of tour; nil stays nil.
//
// Complexity: O(n).
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}
	out := make([]int, len(tour))
	copy(out, tour)
	return out
}
