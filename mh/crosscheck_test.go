package mh_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/katalvlaran/mhrank/mh"
)

// walk is a symmetric Gaussian random-walk proposal for sampleuv.
type walk struct {
	sigma float64
	src   rand.Source
}

func (p walk) ConditionalRand(y float64) float64 {
	return distuv.Normal{Mu: y, Sigma: p.sigma, Src: p.src}.Rand()
}

func (p walk) ConditionalLogProb(x, y float64) float64 {
	return distuv.Normal{Mu: y, Sigma: p.sigma}.LogProb(x)
}

// TestSample_MatchesGonumMH compares an isolated player's chain with gonum's
// generic Metropolis-Hastings on the same N(0,1) target and proposal scale.
func TestSample_MatchesGonumMH(t *testing.T) {
	const n, burn = 30000, 1000

	res, err := mh.Sample(nil, 1, n+burn, mh.WithSeed(77))
	require.NoError(t, err)
	ours, err := res.Samples.Row(0)
	require.NoError(t, err)
	ours = ours[burn:]

	ref := make([]float64, n)
	src := rand.NewPCG(77, 78)
	sampler := sampleuv.MetropolisHastings{
		Target:   distuv.UnitNormal,
		Proposal: walk{sigma: mh.DefaultStepScale, src: src},
		Src:      src,
		BurnIn:   burn,
	}
	sampler.Sample(ref)

	m1, s1 := stat.MeanStdDev(ours, nil)
	m2, s2 := stat.MeanStdDev(ref, nil)
	assert.InDelta(t, m2, m1, 0.1)
	assert.InDelta(t, s2, s1, 0.1)

	rate, ok := res.AcceptanceRate()
	require.True(t, ok)
	// σ=0.6 on a unit normal accepts most proposals.
	assert.Greater(t, rate, 0.7)
	assert.Less(t, rate, 0.95)
}
