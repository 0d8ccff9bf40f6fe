// Package colony - random sources and random city sets.
//
// The engine draws through RandSource so tests can script every start city
// and roulette spin. Seeded sources come from tsp.NewRand (seed 0 ⇒ default).
package colony

import (
	"fmt"

	"github.com/katalvlaran/antcolony/tsp"
)

// RandSource is the randomness an Engine consumes: Intn picks start cities
// and Float64 drives roulette selection. *rand.Rand satisfies it.
//
// Implementations need not be goroutine-safe; the engine serializes access.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// RandomCities scatters n cities uniformly over [0,width)×[0,height).
// A nil rng uses tsp.NewRand(0).
func RandomCities(n int, width, height float64, rng RandSource) ([]City, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: city count %d", ErrInvalidInput, n)
	}
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: area %vx%v", ErrInvalidInput, width, height)
	}
	if rng == nil {
		rng = tsp.NewRand(0)
	}

	cities := make([]City, n)
	for i := range cities {
		cities[i] = City{ID: i, X: rng.Float64() * width, Y: rng.Float64() * height}
	}
	return cities, nil
}
