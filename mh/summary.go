// SPDX-License-Identifier: MIT

package mh

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/mhrank/matrix"
	"github.com/katalvlaran/mhrank/probit"
)

// PlayerSummary condenses one player's chain after burn-in.
type PlayerSummary struct {
	Player int     `json:"player"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Q025   float64 `json:"q025"`
	Median float64 `json:"median"`
	Q975   float64 `json:"q975"`
}

// checkBurnIn validates that columns [burnIn, Cols()) are non-empty.
func checkBurnIn(samples *matrix.Dense, burnIn int) error {
	if samples == nil {
		return matrix.ErrNilMatrix
	}
	if burnIn < 0 || burnIn >= samples.Cols() {
		return fmt.Errorf("%w: burn-in %d with %d sweeps", ErrBadBurnIn, burnIn, samples.Cols())
	}

	return nil
}

// Summarize returns per-player posterior mean, standard deviation and
// 2.5% / 50% / 97.5% empirical quantiles over sweeps [burnIn, Cols()).
//
// Errors:
//   - matrix.ErrNilMatrix for a nil matrix.
//   - ErrBadBurnIn when burnIn < 0 or no sweep remains after it.
//
// Complexity: O(n·T·log T) for the quantile sorts.
func Summarize(samples *matrix.Dense, burnIn int) ([]PlayerSummary, error) {
	if err := checkBurnIn(samples, burnIn); err != nil {
		return nil, err
	}

	means, err := matrix.RowMeans(samples, burnIn)
	if err != nil {
		return nil, err
	}
	stds, err := matrix.RowStdDevs(samples, burnIn)
	if err != nil {
		return nil, err
	}

	n := samples.Rows()
	out := make([]PlayerSummary, n)
	var row []float64
	for i := 0; i < n; i++ {
		if row, err = samples.Row(i); err != nil {
			return nil, err
		}
		tail := row[burnIn:]
		sort.Float64s(tail)
		out[i] = PlayerSummary{
			Player: i,
			Mean:   means[i],
			StdDev: stds[i],
			Q025:   stat.Quantile(0.025, stat.Empirical, tail, nil),
			Median: stat.Quantile(0.5, stat.Empirical, tail, nil),
			Q975:   stat.Quantile(0.975, stat.Empirical, tail, nil),
		}
	}

	return out, nil
}

// Rank returns a copy of sums ordered by posterior mean, highest first.
// Ties keep ascending player order.
func Rank(sums []PlayerSummary) []PlayerSummary {
	out := slices.Clone(sums)
	slices.SortStableFunc(out, func(a, b PlayerSummary) int {
		switch {
		case a.Mean > b.Mean:
			return -1
		case a.Mean < b.Mean:
			return 1
		}
		return a.Player - b.Player
	})

	return out
}

// WinProbability estimates the posterior predictive probability that player
// i beats player j, averaging Φ(w_i − w_j) over sweeps [burnIn, Cols()).
//
// Errors: ErrBadPlayer for unknown rows, plus those of Summarize.
//
// Complexity: O(T).
func WinProbability(samples *matrix.Dense, i, j, burnIn int) (float64, error) {
	if err := checkBurnIn(samples, burnIn); err != nil {
		return 0, err
	}
	n := samples.Rows()
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("%w: (%d,%d) with %d players", ErrBadPlayer, i, j, n)
	}

	wi, err := samples.Row(i)
	if err != nil {
		return 0, err
	}
	wj, err := samples.Row(j)
	if err != nil {
		return 0, err
	}

	var sum float64
	for t := burnIn; t < len(wi); t++ {
		sum += probit.WinProbability(wi[t], wj[t])
	}

	return sum / float64(len(wi)-burnIn), nil
}
