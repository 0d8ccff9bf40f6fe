package colony_test

import (
	"testing"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/tsp"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed Intn and Float64 values so tests can pin every
// roulette decision. It fails the test when a script runs dry.
type scriptedRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedRand) Intn(n int) int {
	require.NotEmpty(s.t, s.ints, "scriptedRand: Intn script exhausted")
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRand) Float64() float64 {
	require.NotEmpty(s.t, s.floats, "scriptedRand: Float64 script exhausted")
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// square10 is the 10×10 square; its optimal tour is the perimeter, 40.
func square10() []colony.City {
	return []colony.City{
		{X: 0, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
	}
}

// newEngine builds an engine and fails the test on error.
func newEngine(t *testing.T, cities []colony.City, opts ...colony.Option) *colony.Engine {
	t.Helper()
	e, err := colony.NewEngine(cities, opts...)
	require.NoError(t, err)
	return e
}

// randomCities returns n seeded random cities on a 100×100 area.
func randomCities(t *testing.T, n int, seed int64) []colony.City {
	t.Helper()
	cs, err := colony.RandomCities(n, 100, 100, tsp.NewRand(seed))
	require.NoError(t, err)
	return cs
}
