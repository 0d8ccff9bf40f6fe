// Package tsp - tour cost over a distance table.
//
// Design:
//   - Fast path for *matrix.Dense (one row slice per leg), generic path for
//     any Distances implementation.
//   - Edges are summed in tour order so the result equals an incremental
//     sum taken while the tour was built.
//   - Per-edge checks: indices in range, distance finite and non-negative.
//
// Complexity: O(len(tour)) time, O(1) extra space.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/antcolony/matrix"
)

// TourCost sums dist over the legs tour[i]→tour[i+1]. The sequence is taken
// as given; a closed tour therefore includes its return leg. Fewer than two
// entries cost 0.
//
// Complexity: O(len(tour)).
func TourCost(dist Distances, tour []int) (float64, error) {
	if dist == nil {
		return 0, fmt.Errorf("%w: nil distance table", ErrDimensionMismatch)
	}
	if d, ok := dist.(*matrix.Dense); ok {
		return tourCostDense(d, tour)
	}
	return tourCostGeneric(dist, tour)
}

func tourCostDense(d *matrix.Dense, tour []int) (float64, error) {
	var (
		sum float64
		n   = d.Rows()
		i   int
		u   int
		v   int
	)
	for i = 0; i+1 < len(tour); i++ {
		u, v = tour[i], tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, fmt.Errorf("%w: edge %d→%d", ErrVertexOutOfRange, u, v)
		}
		row, err := d.Row(u)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrVertexOutOfRange, err)
		}
		w, err := checkWeight(u, v, row[v])
		if err != nil {
			return 0, err
		}
		sum += w
	}
	return sum, nil
}

func tourCostGeneric(dist Distances, tour []int) (float64, error) {
	var (
		sum float64
		n   = dist.Rows()
		i   int
		u   int
		v   int
	)
	for i = 0; i+1 < len(tour); i++ {
		u, v = tour[i], tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, fmt.Errorf("%w: edge %d→%d", ErrVertexOutOfRange, u, v)
		}
		raw, err := dist.At(u, v)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrVertexOutOfRange, err)
		}
		w, err := checkWeight(u, v, raw)
		if err != nil {
			return 0, err
		}
		sum += w
	}
	return sum, nil
}

func checkWeight(u, v int, w float64) (float64, error) {
	switch {
	case math.IsInf(w, 0):
		return 0, fmt.Errorf("%w: edge %d→%d", ErrIncompleteGraph, u, v)
	case math.IsNaN(w) || w < 0:
		return 0, fmt.Errorf("%w: edge %d→%d is %v", ErrNegativeWeight, u, v, w)
	}
	return w, nil
}
