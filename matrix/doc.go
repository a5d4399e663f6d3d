// Package matrix provides the dense row-major float64 matrix used to hold
// chains of skill samples.
//
// The matrix package provides:
//
//   - Dense: a flat row-major buffer with bounds-checked At/Set that return
//     sentinel errors instead of panicking.
//   - Column writes (SetCol) for appending one chain snapshot per sweep, and
//     Row/Col copies for reading a single player's trace or a single sweep.
//   - Row statistics over a column window (RowMeans, RowStdDevs), used to
//     summarize a chain after discarding burn-in columns.
//
// Shapes:
//
//	A sample matrix has one row per player and one column per sweep.
//	Zero-sized shapes (0×N, N×0) are legal: a run with no sweeps or no
//	players still returns a well-formed matrix.
//
// Numeric policy:
//
//	Set and SetCol reject NaN and ±Inf (ErrNaNInf); every stored entry is
//	finite.
//
// Complexity:
//
//	NewDense O(r*c); At/Set O(1); SetCol/Col O(r); Row O(c); Clone O(r*c).
package matrix
