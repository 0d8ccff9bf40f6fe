// Package matrix provides the dense row-major table the colony engine keeps
// its pairwise city distances in.
//
// What & Why:
//
//	Distances are read O(n²) times per ant, so they live in one flat
//	[]float64 with O(1) indexing. NewSymmetric fills the table from a
//	pair function, evaluating each unordered pair once and mirroring it.
//
// Complexity:
//
//	Rows, Cols, At, Set and Row run in O(1).
//	NewDense, NewSymmetric and Clone run in O(rows*cols).
package matrix
