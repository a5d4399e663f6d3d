// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Per-row statistics over a trailing column window [from, Cols()).
//     In a sample matrix a row is one player's chain and the window drops
//     the burn-in sweeps.
//
// Exposed API:
//   - RowMeans(X, from)   -> means  // Σ_j X[i,j] / n over the window
//   - RowStdDevs(X, from) -> stds   // sample standard deviation (n-1 denominator)
//
// Determinism & Performance:
//   - Dense fast-path hands the contiguous row slice to gonum/stat without copying.
//   - Other Matrix implementations fall back to At with full error propagation.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Operation name constants for unified error wrapping.
const (
	opRowMeans   = "RowMeans"
	opRowStdDevs = "RowStdDevs"
)

// matrixErrorf wraps err with an operation tag.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// RowMeans returns the mean of every row over columns [from, Cols()).
//
// Implementation:
//   - Stage 1: validate X and the window (0 <= from < Cols()).
//   - Stage 2: per row, stat.Mean over the window (Dense fast-path; At fallback).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyWindow (from == Cols()), ErrOutOfRange (from<0 or from>Cols()).
//
// Complexity:
//   - Time O(r*(c-from)), Space O(r) (+O(c) per row on the fallback path).
func RowMeans(X Matrix, from int) ([]float64, error) {
	return rowReduce(opRowMeans, X, from, func(row []float64) float64 {
		return stat.Mean(row, nil)
	})
}

// RowStdDevs returns the sample standard deviation of every row over columns
// [from, Cols()). A window of one column yields NaN-free zero.
//
// Errors: as RowMeans.
//
// Complexity: as RowMeans.
func RowStdDevs(X Matrix, from int) ([]float64, error) {
	return rowReduce(opRowStdDevs, X, from, func(row []float64) float64 {
		if len(row) < 2 {
			return 0
		}
		return stat.StdDev(row, nil)
	})
}

// rowReduce applies f to the window of every row.
func rowReduce(op string, X Matrix, from int, f func([]float64) float64) ([]float64, error) {
	// Stage 1 (Validate).
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(op, err)
	}
	if err := ValidateWindow(X, from); err != nil {
		return nil, matrixErrorf(op, err)
	}

	r, c := X.Rows(), X.Cols()
	out := make([]float64, r)

	// Stage 2 (Execute): Dense fast-path reads the flat row-major buffer.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			out[i] = f(d.rowView(i, from))
		}

		return out, nil
	}

	// Stage 2 (fallback): copy each window through At.
	buf := make([]float64, c-from)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		for j = from; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(op, err)
			}
			buf[j-from] = v
		}
		out[i] = f(buf)
	}

	return out, nil
}
