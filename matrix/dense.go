// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row/Col/SetCol return errors instead of panicking.
//   - Keep determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); SetCol/Col: O(r); Row: O(c); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"     // method tag used in error wrappers
	ctxSet    = "Set"    // method tag used in error wrappers
	ctxRow    = "Row"    // method tag used in error wrappers
	ctxCol    = "Col"    // method tag used in error wrappers
	ctxSetCol = "SetCol" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
//
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); either may be zero.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>=0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Behavior highlights:
//   - 0×N and N×0 shapes are legal; they describe runs with no players or
//     no sweeps and hold no elements.
//
// Errors:
//   - ErrInvalidDimensions (negative dimension).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	// make() zero-fills deterministically; len may be zero.
	buf := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Returns the bare sentinel; public methods wrap with coordinates.
//
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
//
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: reject NaN/±Inf.
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite values.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// SetCol writes vec into column col (vec[i] → (i, col)).
//
// Implementation:
//   - Stage 1: validate column index and len(vec)==Rows().
//   - Stage 2: scan vec for NaN/±Inf so a rejected write leaves the column untouched.
//   - Stage 3: strided write, one element per row.
//
// Errors:
//   - ErrOutOfRange (col), ErrDimensionMismatch (len), ErrNaNInf (value).
//
// Complexity: O(r).
func (m *Dense) SetCol(col int, vec []float64) error {
	if col < 0 || col >= m.c {
		return denseErrorf(ctxSetCol, 0, col, ErrOutOfRange)
	}
	if err := ValidateVecLen(vec, m.r); err != nil {
		return denseErrorf(ctxSetCol, len(vec), col, err)
	}

	var i int
	for i = 0; i < m.r; i++ {
		if math.IsNaN(vec[i]) || math.IsInf(vec[i], 0) {
			return denseErrorf(ctxSetCol, i, col, ErrNaNInf)
		}
	}
	for i = 0; i < m.r; i++ {
		m.data[i*m.c+col] = vec[i]
	}

	return nil
}

// Col returns a copy of column col (one sweep snapshot in a sample matrix).
//
// Complexity: O(r).
func (m *Dense) Col(col int) ([]float64, error) {
	if col < 0 || col >= m.c {
		return nil, denseErrorf(ctxCol, 0, col, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+col]
	}

	return out, nil
}

// Row returns a copy of row row (one player's trace in a sample matrix).
//
// Complexity: O(c).
func (m *Dense) Row(row int) ([]float64, error) {
	if row < 0 || row >= m.r {
		return nil, denseErrorf(ctxRow, row, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[row*m.c:(row+1)*m.c])

	return out, nil
}

// rowView returns the live sub-slice of row i over columns [from, c).
// Callers guarantee 0<=i<r and 0<=from<=c.
func (m *Dense) rowView(i, from int) []float64 {
	return m.data[i*m.c+from : (i+1)*m.c]
}

// Clone returns a deep copy (new buffer).
// Mutations of the clone do not affect the original.
//
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Equal reports whether m and other have the same shape and bit-identical
// entries. Used for reproducibility checks.
//
// Complexity: O(r*c).
func (m *Dense) Equal(other *Dense) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.r != other.r || m.c != other.c {
		return false
	}
	for k := range m.data {
		if math.Float64bits(m.data[k]) != math.Float64bits(other.data[k]) {
			return false
		}
	}

	return true
}

// Do calls f for each element in row-major order; stops when f returns false.
//
// Complexity: O(r*c).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// String renders rows as lines with comma-separated values.
// Intended for logs and debugging, not hot paths.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
