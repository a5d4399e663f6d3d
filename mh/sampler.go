// SPDX-License-Identifier: MIT

package mh

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/mhrank/games"
	"github.com/katalvlaran/mhrank/matrix"
	"github.com/katalvlaran/mhrank/probit"
)

// Sample builds the neighbor index for gs and runs numIts sweeps.
//
// Contracts:
//   - every game index in [0, numPlayers); otherwise games.ErrPlayerOutOfRange
//     (or games.ErrInvalidPlayerCount), before any sampling.
//   - numIts >= 0; otherwise ErrNegativeIterations.
//
// Edge cases:
//   - numIts == 0:     numPlayers×0 matrix, AcceptanceRate undefined.
//   - numPlayers == 0: 0×numIts matrix, AcceptanceRate undefined.
//
// Complexity: O(numPlayers + len(gs)) to index, then see SampleIndex.
func Sample(gs []games.Game, numPlayers, numIts int, opts ...Option) (*Result, error) {
	if numIts < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeIterations, numIts)
	}
	idx, err := games.BuildIndex(numPlayers, gs)
	if err != nil {
		return nil, fmt.Errorf("mh: build index: %w", err)
	}

	return SampleIndex(idx, numIts, opts...)
}

// SampleIndex runs numIts sweeps over a prebuilt neighbor index.
// The index is only read, so one index may back several concurrent calls
// as long as each call owns its random source.
//
// Implementation:
//   - Stage 1: validate index, iteration count and options.
//   - Stage 2: allocate the sample matrix and the chain state w.
//   - Stage 3: for each sweep, update players 0..n−1 in place, then copy w
//     into the sweep's column and fire OnSweep.
//
// Complexity: Time O(numIts·(n + 2G)), Space O(n·numIts).
func SampleIndex(idx *games.Index, numIts int, opts ...Option) (*Result, error) {
	// Stage 1 - validation; nothing below this block can leave w half-updated.
	if idx == nil {
		return nil, ErrNilIndex
	}
	if numIts < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeIterations, numIts)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := idx.NumPlayers()
	if o.Initial != nil && len(o.Initial) != n {
		return nil, fmt.Errorf("%w: Initial has %d values for %d players", ErrOptionViolation, len(o.Initial), n)
	}

	// Stage 2 - state.
	samples, err := matrix.NewDense(n, numIts)
	if err != nil {
		return nil, fmt.Errorf("mh: allocate samples: %w", err)
	}
	w := make([]float64, n)
	if o.Initial != nil {
		copy(w, o.Initial)
	}
	res := &Result{Samples: samples, StepScale: o.StepScale}
	rng := o.Rand
	if rng == nil {
		res.Seed = effectiveSeed(o.Seed)
		rng = rngFromSeed(o.Seed)
	}

	// Stage 3 - sweeps.
	var t, i int
	for t = 0; t < numIts; t++ {
		for i = 0; i < n; i++ {
			if update(w, i, idx.Neighbors(i), o.StepScale, rng) {
				res.Accepted++
			}
			res.Total++
		}
		if err = samples.SetCol(t, w); err != nil {
			return nil, fmt.Errorf("mh: sweep %d: %w", t, err)
		}
		o.OnSweep(t, res.Accepted, res.Total)
	}

	return res, nil
}

// update performs one Metropolis–Hastings step on w[i] and reports whether
// the proposal was accepted. It draws exactly one normal and one uniform
// variate, in that order, regardless of sigma.
//
// Both log-probabilities read opponents from w with w[i] still at its
// current value, including entries where i is its own opponent.
func update(w []float64, i int, nbrs []games.Neighbor, sigma float64, rng *rand.Rand) bool {
	cur := w[i]
	lp1 := probit.LocalLogProb(cur, w, nbrs)

	prop := cur + sigma*rng.NormFloat64()
	lp2 := probit.LocalLogProb(prop, w, nbrs)

	// Symmetric proposal: the Hastings correction cancels.
	if math.Log(rng.Float64()) < lp2-lp1 {
		w[i] = prop
		return true
	}

	return false
}
