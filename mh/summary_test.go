package mh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mhrank/games"
	"github.com/katalvlaran/mhrank/matrix"
	"github.com/katalvlaran/mhrank/mh"
)

// fixedSamples builds a 2×5 matrix with known rows.
func fixedSamples(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(2, 5)
	require.NoError(t, err)
	cols := [][]float64{{9, -9}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	for j, c := range cols {
		require.NoError(t, m.SetCol(j, c))
	}
	return m
}

func TestSummarize_KnownRows(t *testing.T) {
	sums, err := mh.Summarize(fixedSamples(t), 1)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, 0, sums[0].Player)
	assert.InDelta(t, 2.5, sums[0].Mean, 1e-12)
	assert.InDelta(t, 1.2909944487358056, sums[0].StdDev, 1e-12)
	assert.Equal(t, 1.0, sums[0].Q025)
	assert.Equal(t, 4.0, sums[0].Q975)
	assert.Contains(t, []float64{2, 3}, sums[0].Median)

	assert.Equal(t, 0.0, sums[1].Mean)
	assert.Equal(t, 0.0, sums[1].StdDev)
}

func TestSummarize_DoesNotMutate(t *testing.T) {
	m := fixedSamples(t)
	before := m.Clone().(*matrix.Dense)
	_, err := mh.Summarize(m, 0)
	require.NoError(t, err)
	require.True(t, before.Equal(m))
}

func TestSummarize_BurnInErrors(t *testing.T) {
	m := fixedSamples(t)

	_, err := mh.Summarize(m, 5)
	assert.ErrorIs(t, err, mh.ErrBadBurnIn)
	_, err = mh.Summarize(m, -1)
	assert.ErrorIs(t, err, mh.ErrBadBurnIn)
	_, err = mh.Summarize(nil, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	empty, err := matrix.NewDense(3, 0)
	require.NoError(t, err)
	_, err = mh.Summarize(empty, 0)
	assert.ErrorIs(t, err, mh.ErrBadBurnIn)
}

func TestRank_OrderAndTies(t *testing.T) {
	in := []mh.PlayerSummary{
		{Player: 0, Mean: 0.1},
		{Player: 1, Mean: 0.7},
		{Player: 2, Mean: 0.1},
		{Player: 3, Mean: -2},
	}
	out := mh.Rank(in)

	order := make([]int, len(out))
	for k, s := range out {
		order[k] = s.Player
	}
	assert.Equal(t, []int{1, 0, 2, 3}, order)
	assert.Equal(t, 0, in[0].Player, "input must not be reordered")
}

func TestWinProbability(t *testing.T) {
	m := fixedSamples(t)

	p, err := mh.WinProbability(m, 0, 1, 1)
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)

	q, err := mh.WinProbability(m, 1, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p+q, 1e-12)

	same, err := mh.WinProbability(m, 1, 1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, same, 1e-15)

	_, err = mh.WinProbability(m, 0, 2, 0)
	assert.ErrorIs(t, err, mh.ErrBadPlayer)
	_, err = mh.WinProbability(m, 0, 1, 5)
	assert.ErrorIs(t, err, mh.ErrBadBurnIn)
}

// TestSummarize_ChainOrdering runs a dominance chain 0 > 1 > 2 and checks
// the ranking and predictive probabilities follow it.
func TestSummarize_ChainOrdering(t *testing.T) {
	var gs []games.Game
	for k := 0; k < 8; k++ {
		gs = append(gs, games.Game{Winner: 0, Loser: 1}, games.Game{Winner: 1, Loser: 2})
	}
	res, err := mh.Sample(gs, 3, 3000, mh.WithSeed(8))
	require.NoError(t, err)

	sums, err := mh.Summarize(res.Samples, 300)
	require.NoError(t, err)
	ranked := mh.Rank(sums)
	require.Equal(t, 0, ranked[0].Player)
	require.Equal(t, 1, ranked[1].Player)
	require.Equal(t, 2, ranked[2].Player)
	for _, s := range sums {
		require.LessOrEqual(t, s.Q025, s.Median)
		require.LessOrEqual(t, s.Median, s.Q975)
	}

	p, err := mh.WinProbability(res.Samples, 0, 2, 300)
	require.NoError(t, err)
	assert.Greater(t, p, 0.9)
}
