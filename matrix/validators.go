// SPDX-License-Identifier: MIT

// Package matrix: shared validators. Each returns a bare sentinel (or nil);
// callers add their operation tag.
package matrix

import "reflect"

// ValidateNotNil returns ErrNilMatrix for a nil interface or a typed nil pointer.
//
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Ptr && v.IsNil() {
		return ErrNilMatrix
	}

	return nil
}

// ValidateWindow checks that the column window [from, Cols()) is legal and
// non-empty.
//
// Errors:
//   - ErrOutOfRange when from<0 or from>Cols().
//   - ErrEmptyWindow when from==Cols().
//
// Complexity: O(1).
func ValidateWindow(m Matrix, from int) error {
	c := m.Cols()
	if from < 0 || from > c {
		return ErrOutOfRange
	}
	if from == c {
		return ErrEmptyWindow
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
//
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return ErrDimensionMismatch
	}

	return nil
}
