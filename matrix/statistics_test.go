// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mhrank/matrix"
)

// hide wraps a Dense so the statistics functions take the At fallback path.
type hide struct{ matrix.Matrix }

func filled(t *testing.T, rows, cols int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(rows, cols)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			require.NoError(t, m.Set(i, j, vals[i*cols+j]))
		}
	}
	return m
}

func TestRowMeans_WindowAndFallback(t *testing.T) {
	t.Parallel()

	X := filled(t, 2, 4, []float64{
		100, 1, 2, 3,
		-50, 4, 4, 4,
	})

	fast, err := matrix.RowMeans(X, 1)
	require.NoError(t, err)
	slow, err := matrix.RowMeans(hide{X}, 1)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2, 4}, fast, 1e-12)
	assert.InDeltaSlice(t, fast, slow, 0)
}

func TestRowStdDevs_Sample(t *testing.T) {
	t.Parallel()

	X := filled(t, 2, 3, []float64{
		1, 2, 3,
		5, 5, 5,
	})
	sd, err := matrix.RowStdDevs(X, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sd[0], 1e-12)
	assert.InDelta(t, 0.0, sd[1], 1e-12)

	// Single-column window is defined as zero spread.
	sd, err = matrix.RowStdDevs(X, 2)
	require.NoError(t, err)
	for _, v := range sd {
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
}

func TestRowStats_Errors(t *testing.T) {
	t.Parallel()

	X := filled(t, 1, 2, []float64{1, 2})

	_, err := matrix.RowMeans(X, 2)
	assert.ErrorIs(t, err, matrix.ErrEmptyWindow)
	_, err = matrix.RowMeans(X, 3)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.RowStdDevs(X, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	var nilDense *matrix.Dense
	_, err = matrix.RowMeans(nilDense, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.RowMeans(nil, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
