package colony_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/pheromone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunIteration_ScriptedSelection pins the roulette rule on three cities.
//
//	0:(0,0)  1:(1,0)  2:(0,2)
//
// From 0 with α=β=1 and τ=1 the weights are ≈1 (city 1) and ≈0.5 (city 2).
// A draw of 0.9 gives r≈1.35 which survives city 1 and lands on city 2;
// a draw of 0.5 gives r≈0.75 and lands on city 1.
func TestRunIteration_ScriptedSelection(t *testing.T) {
	cities := []colony.City{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 2}}
	p := colony.Params{Alpha: 1, Beta: 1, Rho: 0, Ants: 1}

	cases := []struct {
		name  string
		draw  float64
		want  []int
		wantL float64
	}{
		{"far city first", 0.9, []int{0, 2, 1, 0}, 2 + math.Sqrt(5) + 1},
		{"near city first", 0.5, []int{0, 1, 2, 0}, 1 + math.Sqrt(5) + 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := &scriptedRand{t: t, ints: []int{0}, floats: []float64{tc.draw, 0.5}}
			e := newEngine(t, cities, colony.WithRand(rng))

			res, err := e.RunIteration(p)
			require.NoError(t, err)
			require.Equal(t, tc.want, res.BestTour)
			require.InDelta(t, tc.wantL, res.BestLength, 1e-9)
			require.True(t, res.Improved)
			require.Equal(t, 1, res.Tours)
		})
	}
}

// TestRunIteration_FirstImprovingTourWinsTies scripts two ants that both find
// a perimeter tour of the square; the first one must be kept.
func TestRunIteration_FirstImprovingTourWinsTies(t *testing.T) {
	rng := &scriptedRand{
		t:      t,
		ints:   []int{0, 1},
		floats: []float64{0.1, 0.1, 0.5, 0.1, 0.9, 0.5},
	}
	e := newEngine(t, square10(), colony.WithRand(rng))

	res, err := e.RunIteration(colony.Params{Alpha: 1, Beta: 2, Rho: 0.5, Ants: 2})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 0}, res.BestTour)
	require.Equal(t, 40.0, res.BestLength)
	require.Equal(t, 40.0, res.IterationBest)
	require.Equal(t, 40.0, res.IterationMean)
}

// TestRunIteration_DepositArithmetic: with two cities every tour is a→b→a, so
// the single edge is traversed twice per ant regardless of randomness.
func TestRunIteration_DepositArithmetic(t *testing.T) {
	cities := []colony.City{{X: 0, Y: 0}, {X: 3, Y: 4}}
	const length = 10.0

	cases := []struct {
		rho  float64
		ants int
	}{
		{0.5, 1},
		{0.5, 3},
		{0, 2},
		{1, 1}, // full forgetting: only this iteration's deposit survives
	}
	for _, tc := range cases {
		e := newEngine(t, cities)
		res, err := e.RunIteration(colony.Params{Alpha: 1, Beta: 1, Rho: tc.rho, Ants: tc.ants})
		require.NoError(t, err)
		require.Equal(t, length, res.BestLength)

		want := (1-tc.rho)*pheromone.InitialLevel + float64(tc.ants)*2/(length+colony.DepositEpsilon)
		got, ok := e.RawLevel(0, 1)
		require.True(t, ok)
		require.InDelta(t, want, got, 1e-12, "rho=%v ants=%d", tc.rho, tc.ants)
	}
}

// TestRunIteration_ToursAreHamiltonian checks the best tour after every
// iteration for a range of sizes and degenerate parameters.
func TestRunIteration_ToursAreHamiltonian(t *testing.T) {
	params := []colony.Params{
		colony.DefaultParams(),
		{Alpha: 0, Beta: 0, Rho: 0, Ants: 3},
		{Alpha: 3, Beta: 5, Rho: 1, Ants: 1},
		{Alpha: 0.5, Beta: 1.5, Rho: 0.1, Ants: 7},
	}
	for n := 2; n <= 12; n++ {
		e := newEngine(t, randomCities(t, n, int64(n)), colony.WithSeed(int64(100+n)))
		for _, p := range params {
			for it := 0; it < 5; it++ {
				res, err := e.RunIteration(p)
				require.NoError(t, err)
				require.NoError(t, colony.ValidateTour(res.BestTour, n), "n=%d tour=%v", n, res.BestTour)

				l, err := colony.TourLength(e.Cities(), res.BestTour)
				require.NoError(t, err)
				require.InDelta(t, l, res.BestLength, 1e-9)
			}
		}
	}
}

// TestRunIteration_CoincidentCities: zero distances are absorbed by ε, and an
// overflowing desirability sum falls back to a uniform pick.
func TestRunIteration_CoincidentCities(t *testing.T) {
	cities := []colony.City{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	e := newEngine(t, cities, colony.WithSeed(3))

	for _, p := range []colony.Params{
		{Alpha: 1, Beta: 2, Rho: 0.5, Ants: 4},
		{Alpha: 1, Beta: 100, Rho: 0.5, Ants: 4}, // (1e6)^100 overflows
	} {
		res, err := e.RunIteration(p)
		require.NoError(t, err)
		require.NoError(t, colony.ValidateTour(res.BestTour, len(cities)))
		require.Equal(t, 0.0, res.BestLength)
	}
	for _, edge := range e.Snapshot().Pheromones {
		require.False(t, math.IsNaN(edge.Level))
		require.GreaterOrEqual(t, edge.Level, 0.0)
	}
}

// TestRunIteration_BestIsMonotonic: best length never increases.
func TestRunIteration_BestIsMonotonic(t *testing.T) {
	e := newEngine(t, randomCities(t, 15, 9), colony.WithSeed(9))
	p := colony.Params{Alpha: 1, Beta: 2, Rho: 0.3, Ants: 5}

	prev := math.Inf(1)
	for it := 1; it <= 100; it++ {
		res, err := e.RunIteration(p)
		require.NoError(t, err)
		require.LessOrEqual(t, res.BestLength, prev)
		require.LessOrEqual(t, res.BestLength, res.IterationBest)
		require.Equal(t, it, res.Iteration)
		prev = res.BestLength
	}
}

// TestRunIteration_Deterministic: the same seed reproduces tours and the
// whole best-length trajectory.
func TestRunIteration_Deterministic(t *testing.T) {
	cities := randomCities(t, 14, 21)
	p := colony.Params{Alpha: 1, Beta: 3, Rho: 0.2, Ants: 8}

	run := func() []colony.Result {
		e := newEngine(t, cities, colony.WithSeed(77))
		out := make([]colony.Result, 0, 40)
		for i := 0; i < 40; i++ {
			res, err := e.RunIteration(p)
			require.NoError(t, err)
			out = append(out, res)
		}
		return out
	}

	first, second := run(), run()
	require.Equal(t, first, second)
}

// TestRunIteration_ZeroAnts: an empty population mutates nothing.
func TestRunIteration_ZeroAnts(t *testing.T) {
	e := newEngine(t, randomCities(t, 6, 1))
	_, err := e.RunIteration(colony.DefaultParams())
	require.NoError(t, err)

	before := e.Snapshot()
	res, err := e.RunIteration(colony.Params{Alpha: 1, Beta: 2, Rho: 0.9, Ants: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Tours)
	assert.False(t, res.Improved)
	assert.True(t, math.IsInf(res.IterationBest, 1))
	assert.Equal(t, before.BestLength, res.BestLength)
	assert.Equal(t, before, e.Snapshot())
}

// TestRunIteration_InsufficientCities is a recoverable no-op.
func TestRunIteration_InsufficientCities(t *testing.T) {
	for _, cities := range [][]colony.City{nil, {{X: 1, Y: 1}}} {
		e := newEngine(t, cities)
		res, err := e.RunIteration(colony.DefaultParams())
		require.ErrorIs(t, err, colony.ErrInsufficientCities)
		require.Equal(t, 0, res.Iteration)
		require.False(t, res.HasBest())
		require.True(t, math.IsInf(res.BestLength, 1))
		require.Equal(t, 0, e.Iteration())
	}
}

// TestRunIteration_InvalidParams leaves state untouched.
func TestRunIteration_InvalidParams(t *testing.T) {
	e := newEngine(t, square10())
	before := e.Snapshot()

	for _, p := range []colony.Params{
		{Alpha: -1, Beta: 2, Rho: 0.5, Ants: 1},
		{Alpha: 1, Beta: -0.1, Rho: 0.5, Ants: 1},
		{Alpha: 1, Beta: 2, Rho: 1.5, Ants: 1},
		{Alpha: 1, Beta: 2, Rho: -0.5, Ants: 1},
		{Alpha: 1, Beta: 2, Rho: math.NaN(), Ants: 1},
		{Alpha: math.Inf(1), Beta: 2, Rho: 0.5, Ants: 1},
		{Alpha: 1, Beta: 2, Rho: 0.5, Ants: -1},
	} {
		_, err := e.RunIteration(p)
		require.ErrorIs(t, err, colony.ErrInvalidInput, "%+v", p)
	}
	require.Equal(t, before, e.Snapshot())
}

// TestRunIteration_SquareConverges: 4 corners of a 10×10 square, α=1 β=2
// ρ=0.5 with 10 ants. No Hamiltonian cycle is shorter than the perimeter.
func TestRunIteration_SquareConverges(t *testing.T) {
	e := newEngine(t, square10(), colony.WithSeed(42))
	p := colony.Params{Alpha: 1, Beta: 2, Rho: 0.5, Ants: 10}

	res, err := e.RunIteration(p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.BestLength, 40.0)
	require.LessOrEqual(t, res.BestLength, 40.0+1e-9)

	for i := 1; i < 200; i++ {
		res, err = e.RunIteration(p)
		require.NoError(t, err)
	}
	require.Equal(t, 200, res.Iteration)
	require.InDelta(t, 40.0, res.BestLength, 1e-9)
	require.NoError(t, colony.ValidateTour(res.BestTour, 4))
}

// TestRunIteration_ReinforcesBestEdges: after convergence on the square the
// perimeter edges carry more pheromone than the diagonals.
func TestRunIteration_ReinforcesBestEdges(t *testing.T) {
	e := newEngine(t, square10(), colony.WithSeed(5))
	p := colony.Params{Alpha: 1, Beta: 2, Rho: 0.5, Ants: 10}
	for i := 0; i < 50; i++ {
		_, err := e.RunIteration(p)
		require.NoError(t, err)
	}

	diag := math.Max(e.Level(0, 2), e.Level(1, 3))
	for _, k := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		require.Greater(t, e.Level(k[0], k[1]), diag, "edge %v", k)
	}
}
