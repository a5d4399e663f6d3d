// SPDX-License-Identifier: MIT

// Package mh provides tunable options, results and error definitions for
// the skill sampler.
package mh

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/mhrank/matrix"
)

// Sentinel errors for sampler execution.
var (
	// ErrNilIndex is returned if a nil neighbor index is passed.
	ErrNilIndex = errors.New("mh: neighbor index is nil")

	// ErrNegativeIterations is returned when the sweep count is negative.
	ErrNegativeIterations = errors.New("mh: number of iterations must be >= 0")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("mh: invalid option supplied")

	// ErrBadBurnIn is returned when a burn-in leaves no sweeps to summarize.
	ErrBadBurnIn = errors.New("mh: burn-in must leave at least one sweep")

	// ErrBadPlayer is returned when a summary query names an unknown player row.
	ErrBadPlayer = errors.New("mh: player index out of range")
)

// DefaultStepScale is the standard deviation σ of the Gaussian random-walk proposal.
const DefaultStepScale = 0.6

// Option configures the sampler via functional arguments.
// If an Option is invalid (e.g. negative step scale), it is recorded
// internally and surfaced as ErrOptionViolation when sampling is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize a sampling run.
type Options struct {
	// Seed seeds the internal source. Zero selects a fixed default seed,
	// so the zero value is still deterministic.
	Seed int64

	// Rand, if non-nil, is used instead of a source built from Seed.
	// The sampler consumes it without locking; do not share it across
	// concurrent calls.
	Rand *rand.Rand

	// StepScale is σ, the proposal standard deviation.
	StepScale float64

	// Initial, if non-nil, is the starting skill vector (len == players).
	// It is copied; the caller's slice is never mutated.
	Initial []float64

	// OnSweep is called after every completed sweep with the 0-based sweep
	// number and the running accepted/total counters.
	OnSweep func(sweep, accepted, total int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - Seed 0 (→ defaultRNGSeed), no external source
//   - StepScale = DefaultStepScale
//   - zero starting vector
//   - no-op OnSweep hook
func DefaultOptions() Options {
	return Options{
		Seed:      0,
		StepScale: DefaultStepScale,
		OnSweep:   func(int, int, int) {},
	}
}

// WithSeed seeds the internal pseudorandom source.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithRand makes the sampler draw from r. A nil r keeps the seeded source.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithStepScale sets the proposal scale σ.
//
//	σ > 0:  regular random walk
//	σ == 0: degenerate walk; every proposal equals the current value and is accepted
//	σ < 0, NaN or ±Inf: invalid option → ErrOptionViolation
func WithStepScale(sigma float64) Option {
	return func(o *Options) {
		if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
			o.err = fmt.Errorf("%w: StepScale must be finite and >= 0 (%g)", ErrOptionViolation, sigma)
			return
		}
		o.StepScale = sigma
	}
}

// WithInitial starts the chain at w0 instead of the zero vector.
// Length is checked against the player count when sampling starts; every
// value must be finite.
func WithInitial(w0 []float64) Option {
	return func(o *Options) {
		for i, v := range w0 {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				o.err = fmt.Errorf("%w: Initial[%d] is not finite (%g)", ErrOptionViolation, i, v)
				return
			}
		}
		o.Initial = append([]float64(nil), w0...)
	}
}

// WithOnSweep registers a progress hook run after every sweep.
func WithOnSweep(fn func(sweep, accepted, total int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSweep = fn
		}
	}
}

// Result holds the outcome of a sampling run:
//   - Samples:   players × sweeps matrix; column t is w after sweep t.
//   - Accepted:  number of accepted proposals.
//   - Total:     number of proposals (players × sweeps).
//   - Seed:      effective seed (0 when a caller-owned source was used).
//   - StepScale: σ used for the run.
type Result struct {
	Samples   *matrix.Dense
	Accepted  int
	Total     int
	Seed      int64
	StepScale float64
}

// AcceptanceRate returns Accepted/Total. When no update was performed
// (Total == 0) the rate is undefined and ok is false.
func (r *Result) AcceptanceRate() (rate float64, ok bool) {
	if r.Total == 0 {
		return 0, false
	}

	return float64(r.Accepted) / float64(r.Total), true
}

// Final returns a copy of the chain state after the last sweep, or nil when
// no sweep was run.
func (r *Result) Final() []float64 {
	c := r.Samples.Cols()
	if c == 0 {
		return nil
	}
	col, err := r.Samples.Col(c - 1)
	if err != nil {
		return nil
	}

	return col
}
