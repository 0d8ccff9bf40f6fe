// Package matrix - Dense, a row-major float64 table.
//
// Design:
//   - Flat backing slice of length r*c, zero-filled on creation.
//   - Zero-sized shapes are legal: an empty city set has an empty table.
//   - Bounds-checked At/Set return ErrIndexOutOfBounds, never panic.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

// denseErrorf wraps err with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
type Dense struct {
	r, c int       // rows, columns
	data []float64 // len == r*c
}

// NewDense creates a zero-filled rows×cols matrix.
// Returns ErrInvalidDimensions if rows or cols is negative.
//
// Complexity: O(rows*cols).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewSymmetric builds an n×n table with zero diagonal where entry (i, j)
// and (j, i) both hold weight(i, j), evaluated once per pair with i < j.
// Every weight must be finite (ErrNaNInf) and non-negative (ErrNegativeWeight).
//
// Complexity: O(n²) time and memory, n(n−1)/2 calls to weight.
func NewSymmetric(n int, weight func(i, j int) float64) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		w    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			w = weight(i, j)
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, denseErrorf("NewSymmetric", i, j, ErrNaNInf)
			}
			if w < 0 {
				return nil, denseErrorf("NewSymmetric", i, j, ErrNegativeWeight)
			}
			m.data[i*n+j] = w
			m.data[j*n+i] = w
		}
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat offset of (row, col).
//
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	return row*m.c + col, nil
}

// At returns the element at (row, col).
//
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col).
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Row returns row i as a slice aliasing the backing storage. Hot loops use
// it to read a whole row after a single bounds check; callers must not
// write through it.
//
// Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrIndexOutOfBounds)
	}
	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// Clone returns a deep copy.
//
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...)}
}

// String implements fmt.Stringer, one bracketed row per line.
func (m *Dense) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
