// Package matrix: sentinel error set.
// Every constructor and accessor returns one of these, wrapped with the
// method and indices; callers check them via errors.Is.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates a negative row or column count.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrIndexOutOfBounds indicates a row or column index outside the shape.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrNaNInf indicates a NaN or ±Inf entry where only finite values are allowed.
	ErrNaNInf = errors.New("matrix: NaN or Inf value")

	// ErrNegativeWeight indicates a negative entry in a distance table.
	ErrNegativeWeight = errors.New("matrix: negative weight")
)
