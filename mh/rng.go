// Package mh - RNG utilities.
//
// Goals:
//   - Determinism: same seed ⇒ identical sample path across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each Sample call builds its own
//     source unless the caller passes one via WithRand.
package mh

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// effectiveSeed applies the seed==0 policy.
func effectiveSeed(seed int64) int64 {
	if seed == 0 {
		return defaultRNGSeed
	}

	return seed
}

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(effectiveSeed(seed)))
}
