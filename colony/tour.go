// Package colony - tour checks and Euclidean geometry.
//
// ValidateTour and TourLength delegate to the tsp helpers and translate
// their sentinels: out-of-range indices become ErrIndexOutOfRange, every
// other structural failure becomes ErrInvalidInput.
//
// Complexity: O(n) per call.
package colony

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/antcolony/matrix"
	"github.com/katalvlaran/antcolony/pheromone"
	"github.com/katalvlaran/antcolony/tsp"
)

// ValidateTour enforces the Hamiltonian-cycle invariants for n cities:
// len(tour) == n+1, tour[0] == tour[n], and every index in [0, n) appears
// exactly once in tour[0:n].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	return tourError(tsp.ValidateTour(tour, n))
}

// TourLength sums the Euclidean distances between consecutive cities of tour.
// The tour is taken as given; close it first if the return leg should count.
func TourLength(cities []City, tour []int) (float64, error) {
	l, err := tsp.TourCost(euclidean(cities), tour)
	return l, tourError(err)
}

// euclidean computes distances on demand, for one-off tour lengths where
// building a full table would cost O(n²).
type euclidean []City

func (c euclidean) Rows() int { return len(c) }

func (c euclidean) At(i, j int) (float64, error) {
	if i < 0 || i >= len(c) || j < 0 || j >= len(c) {
		return 0, fmt.Errorf("%w: (%d,%d)", matrix.ErrIndexOutOfBounds, i, j)
	}
	return distance(c[i], c[j]), nil
}

// distanceTable builds the symmetric n×n table the engine reads during
// construction.
func distanceTable(cities []City) (*matrix.Dense, error) {
	return matrix.NewSymmetric(len(cities), func(i, j int) float64 {
		return distance(cities[i], cities[j])
	})
}

func tourError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tsp.ErrVertexOutOfRange):
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}

// tourEdges lists the canonical edges of a closed tour, one per leg.
func tourEdges(tour []int) []pheromone.EdgeKey {
	if len(tour) < 2 {
		return nil
	}
	edges := make([]pheromone.EdgeKey, len(tour)-1)
	for i := range edges {
		edges[i] = pheromone.Key(tour[i], tour[i+1])
	}
	return edges
}

func distance(a, b City) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// fastPow avoids math.Pow for the exponents Ant System is usually run with.
func fastPow(x, p float64) float64 {
	switch p {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	}
	return math.Pow(x, p)
}
