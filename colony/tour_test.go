package colony_test

import (
	"testing"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/stretchr/testify/require"
)

func TestValidateTour(t *testing.T) {
	cases := []struct {
		name string
		tour []int
		n    int
		err  error
	}{
		{"valid", []int{2, 0, 1, 3, 2}, 4, nil},
		{"valid two cities", []int{1, 0, 1}, 2, nil},
		{"too short", []int{0, 1, 0}, 3, colony.ErrInvalidInput},
		{"not closed", []int{0, 1, 2, 1}, 3, colony.ErrInvalidInput},
		{"repeat", []int{0, 1, 1, 0}, 3, colony.ErrInvalidInput},
		{"out of range", []int{0, 5, 1, 0}, 3, colony.ErrIndexOutOfRange},
		{"single city", []int{0, 0}, 1, colony.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := colony.ValidateTour(tc.tour, tc.n)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestTourLength(t *testing.T) {
	l, err := colony.TourLength(square10(), []int{0, 1, 2, 3, 0})
	require.NoError(t, err)
	require.Equal(t, 40.0, l)

	l, err = colony.TourLength(square10(), []int{0, 2, 1, 3, 0})
	require.NoError(t, err)
	require.InDelta(t, 20+20*1.4142135623730951, l, 1e-9)

	_, err = colony.TourLength(square10(), []int{0, 4})
	require.ErrorIs(t, err, colony.ErrIndexOutOfRange)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, colony.DefaultParams().Validate())
	require.NoError(t, colony.Params{}.Validate())
	require.NoError(t, colony.Params{Rho: 1}.Validate())
	require.ErrorIs(t, colony.Params{Rho: 1.01}.Validate(), colony.ErrInvalidInput)
}
