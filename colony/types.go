// Package colony - parameters, results and sentinels.
package colony

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/antcolony/pheromone"
)

const (
	// DistanceEpsilon keeps η finite for coincident cities.
	DistanceEpsilon = 1e-6

	// DepositEpsilon keeps the deposit 1/(length+ε) finite for zero-length tours.
	DepositEpsilon = 1e-6
)

// Sentinel errors.
var (
	// ErrInvalidInput indicates malformed parameters or city coordinates.
	ErrInvalidInput = errors.New("colony: invalid input")

	// ErrInsufficientCities indicates fewer than two cities; callers should
	// prompt for more cities rather than treat it as a failure.
	ErrInsufficientCities = errors.New("colony: at least 2 cities are required")

	// ErrIndexOutOfRange indicates a city index outside [0, n).
	ErrIndexOutOfRange = errors.New("colony: city index out of range")
)

// City is a point in the plane. ID always equals the city's index in the
// engine's city slice.
type City struct {
	ID int     `json:"id" yaml:"-"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}

// Params are the per-iteration Ant System parameters.
type Params struct {
	// Alpha weights the pheromone level (τ^α). Must be >= 0.
	Alpha float64 `json:"alpha" yaml:"alpha"`

	// Beta weights the distance heuristic (η^β). Must be >= 0.
	Beta float64 `json:"beta" yaml:"beta"`

	// Rho is the evaporation rate in [0,1].
	Rho float64 `json:"rho" yaml:"rho"`

	// Ants is the population size. Zero makes RunIteration a no-op.
	Ants int `json:"ants" yaml:"ants"`
}

// DefaultParams returns the classic Ant System setting α=1, β=2, ρ=0.5 with 10 ants.
func DefaultParams() Params {
	return Params{Alpha: 1, Beta: 2, Rho: 0.5, Ants: 10}
}

// Validate reports ErrInvalidInput for negative or non-finite values and for
// rho outside [0,1].
func (p Params) Validate() error {
	if !finite(p.Alpha) || p.Alpha < 0 {
		return fmt.Errorf("%w: alpha must be a finite value >= 0 (got %v)", ErrInvalidInput, p.Alpha)
	}
	if !finite(p.Beta) || p.Beta < 0 {
		return fmt.Errorf("%w: beta must be a finite value >= 0 (got %v)", ErrInvalidInput, p.Beta)
	}
	if math.IsNaN(p.Rho) || p.Rho < 0 || p.Rho > 1 {
		return fmt.Errorf("%w: rho must lie in [0,1] (got %v)", ErrInvalidInput, p.Rho)
	}
	if p.Ants < 0 {
		return fmt.Errorf("%w: ants must be >= 0 (got %d)", ErrInvalidInput, p.Ants)
	}
	return nil
}

// Result is what RunIteration reports back to the caller.
type Result struct {
	// Iteration is the number of completed iterations since the last reset.
	Iteration int

	// Tours is the number of tours built by this call (0 for a no-op).
	Tours int

	// BestTour is a copy of the best closed tour so far, nil if none.
	BestTour []int

	// BestLength is the length of BestTour, +Inf if none.
	BestLength float64

	// Improved reports whether this call replaced the best tour.
	Improved bool

	// IterationBest and IterationMean summarize this call's tours.
	// Both are +Inf when Tours == 0.
	IterationBest float64
	IterationMean float64
}

// HasBest reports whether a best tour has been recorded.
func (r Result) HasBest() bool {
	return r.BestTour != nil
}

// Snapshot is a consistent read of the engine state for rendering.
type Snapshot struct {
	Cities     []City
	Pheromones []pheromone.Edge
	MaxLevel   float64
	Iteration  int
	BestTour   []int
	BestLength float64
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
