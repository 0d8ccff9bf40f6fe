package colony_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/pheromone"
	"github.com/katalvlaran/antcolony/tsp"
	"github.com/stretchr/testify/require"
)

// warm runs a few iterations so the engine carries non-trivial state.
func warm(t *testing.T, e *colony.Engine) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, err := e.RunIteration(colony.DefaultParams())
		require.NoError(t, err)
	}
	_, best := e.Best()
	require.False(t, math.IsInf(best, 1))
}

// requirePristine asserts uniform pheromone, no best tour and iteration 0.
func requirePristine(t *testing.T, e *colony.Engine, n int) {
	t.Helper()
	snap := e.Snapshot()
	require.Len(t, snap.Cities, n)
	require.Len(t, snap.Pheromones, n*(n-1)/2)
	for _, edge := range snap.Pheromones {
		require.Equal(t, pheromone.InitialLevel, edge.Level)
	}
	require.Nil(t, snap.BestTour)
	require.True(t, math.IsInf(snap.BestLength, 1))
	require.Equal(t, 0, snap.Iteration)
	for i, c := range snap.Cities {
		require.Equal(t, i, c.ID)
	}
}

func TestNewEngine(t *testing.T) {
	e := newEngine(t, square10())
	requirePristine(t, e, 4)

	_, err := colony.NewEngine(square10(), colony.WithInitialLevel(0))
	require.ErrorIs(t, err, colony.ErrInvalidInput)

	_, err = colony.NewEngine([]colony.City{{X: math.NaN(), Y: 0}})
	require.ErrorIs(t, err, colony.ErrInvalidInput)
}

func TestNewEngine_InitialLevel(t *testing.T) {
	e := newEngine(t, square10(), colony.WithInitialLevel(0.2))
	require.Equal(t, 0.2, e.Level(0, 3))

	warm(t, e)
	e.Reset()
	require.Equal(t, 0.2, e.Level(0, 3))
}

// TestSetCities_ResetsState covers the city-set-change contract.
func TestSetCities_ResetsState(t *testing.T) {
	e := newEngine(t, square10(), colony.WithSeed(8))
	warm(t, e)

	cities := randomCities(t, 7, 3)
	cities[4].ID = 99 // IDs are rewritten to indices
	require.NoError(t, e.SetCities(cities))
	requirePristine(t, e, 7)

	// Invalid coordinates leave the previous set in place.
	warm(t, e)
	iter := e.Iteration()
	require.ErrorIs(t, e.SetCities([]colony.City{{X: 0, Y: math.Inf(1)}}), colony.ErrInvalidInput)
	require.Len(t, e.Cities(), 7)
	require.Equal(t, iter, e.Iteration())
}

func TestAddCity(t *testing.T) {
	e := newEngine(t, square10(), colony.WithSeed(2))
	warm(t, e)

	c, err := e.AddCity(5, 5)
	require.NoError(t, err)
	require.Equal(t, colony.City{ID: 4, X: 5, Y: 5}, c)
	requirePristine(t, e, 5)

	_, err = e.AddCity(math.NaN(), 1)
	require.ErrorIs(t, err, colony.ErrInvalidInput)
	require.Len(t, e.Cities(), 5)
}

func TestRemoveCity(t *testing.T) {
	e := newEngine(t, square10(), colony.WithSeed(2))
	warm(t, e)

	require.NoError(t, e.RemoveCity(1))
	requirePristine(t, e, 3)
	require.Equal(t, []colony.City{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 10, Y: 10},
		{ID: 2, X: 10, Y: 0},
	}, e.Cities())

	require.ErrorIs(t, e.RemoveCity(3), colony.ErrIndexOutOfRange)
	require.ErrorIs(t, e.RemoveCity(-1), colony.ErrIndexOutOfRange)
}

// TestToggleCity mimics clicking: near an existing city removes it,
// empty space adds one.
func TestToggleCity(t *testing.T) {
	e := newEngine(t, square10())

	added, err := e.ToggleCity(9.5, 9.5, 1)
	require.NoError(t, err)
	require.False(t, added)
	require.Len(t, e.Cities(), 3)

	added, err = e.ToggleCity(5, 5, 1)
	require.NoError(t, err)
	require.True(t, added)
	require.Len(t, e.Cities(), 4)
	require.Equal(t, colony.City{ID: 3, X: 5, Y: 5}, e.Cities()[3])

	_, err = e.ToggleCity(0, 0, -1)
	require.ErrorIs(t, err, colony.ErrInvalidInput)
}

func TestReset(t *testing.T) {
	e := newEngine(t, randomCities(t, 9, 4), colony.WithSeed(4))
	warm(t, e)

	e.Reset()
	requirePristine(t, e, 9)
}

// TestBest_ReturnsCopies ensures callers cannot mutate the record.
func TestBest_ReturnsCopies(t *testing.T) {
	e := newEngine(t, square10())
	warm(t, e)

	tour, _ := e.Best()
	tour[0] = -42
	again, _ := e.Best()
	require.NotEqual(t, -42, again[0])

	snap := e.Snapshot()
	snap.Cities[0].X = 1e9
	require.Equal(t, 0.0, e.Cities()[0].X)
}

func TestRandomCities(t *testing.T) {
	a, err := colony.RandomCities(20, 800, 600, tsp.NewRand(11))
	require.NoError(t, err)
	b, err := colony.RandomCities(20, 800, 600, tsp.NewRand(11))
	require.NoError(t, err)
	require.Equal(t, a, b)
	for i, c := range a {
		require.Equal(t, i, c.ID)
		require.True(t, c.X >= 0 && c.X < 800 && c.Y >= 0 && c.Y < 600)
	}

	_, err = colony.RandomCities(-1, 1, 1, nil)
	require.ErrorIs(t, err, colony.ErrInvalidInput)
	_, err = colony.RandomCities(3, 0, 1, nil)
	require.ErrorIs(t, err, colony.ErrInvalidInput)
}

// TestSetCities_OverflowingDistances rejects coordinates whose distances
// overflow to +Inf and leaves the previous run untouched.
func TestSetCities_OverflowingDistances(t *testing.T) {
	e := newEngine(t, square10(), colony.WithSeed(3))
	warm(t, e)
	iter := e.Iteration()

	err := e.SetCities([]colony.City{{X: -math.MaxFloat64, Y: 0}, {X: math.MaxFloat64, Y: 0}})
	require.ErrorIs(t, err, colony.ErrInvalidInput)
	require.Len(t, e.Cities(), 4)
	require.Equal(t, iter, e.Iteration())
	require.Len(t, e.Snapshot().Pheromones, 6)
}

// TestLevel_ReadsThroughEngine covers the floor and raw views of the store.
func TestLevel_ReadsThroughEngine(t *testing.T) {
	e := newEngine(t, square10())
	raw, ok := e.RawLevel(0, 1)
	require.True(t, ok)
	require.Equal(t, pheromone.InitialLevel, raw)

	_, ok = e.RawLevel(0, 0)
	require.False(t, ok)
	require.Equal(t, pheromone.Floor, e.Level(0, 0))
	require.Equal(t, pheromone.Floor, e.Level(0, 9))

	// rho = 1 forgets the initial level; only deposits remain.
	_, err := e.RunIteration(colony.Params{Alpha: 1, Beta: 2, Rho: 1, Ants: 1})
	require.NoError(t, err)
	best, length := e.Best()
	for i := 0; i+1 < len(best); i++ {
		got, ok := e.RawLevel(best[i], best[i+1])
		require.True(t, ok)
		require.InDelta(t, 1/(length+colony.DepositEpsilon), got, 1e-12)
	}
}
