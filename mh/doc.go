// Package mh draws posterior samples of player skills from pairwise game
// outcomes with single-site Metropolis–Hastings under the probit model.
//
// What
//
//   - Model: skill w_i ~ N(0,1) a priori; P(i beats j) = Φ(w_i − w_j).
//   - Chain state: a skill vector w of length n, starting at zero (or at a
//     caller-supplied vector, see WithInitial).
//   - One sweep updates players 0..n−1 in order. For player i:
//     1. lp1 = log N(w_i) + Σ_{(j,s)} log Φ(s·(w_i − w_j))
//     2. w' = w_i + σ·Z, Z ~ N(0,1)              (σ = 0.6 by default)
//     3. lp2 = same sum with w' in place of w_i (opponents fixed)
//     4. accept iff log U < lp2 − lp1, U ~ Uniform[0,1)
//   - After each sweep the whole of w is copied into one column of the
//     returned sample matrix (rows = players, columns = sweeps).
//
// Determinism
//
//	Updates are sequential: player i+1 sees player i's new value from the
//	same sweep. Random draws come from one *rand.Rand consumed in the fixed
//	order Z, U per player per sweep, so a fixed seed and fixed input give a
//	bit-identical sample matrix. A batch (synchronous) variant would change
//	the sample path and is deliberately not offered.
//
// Acceptance rate
//
//	Result carries explicit Accepted/Total counters for the call. When no
//	update was performed (no sweeps or no players) the rate is undefined and
//	AcceptanceRate reports ok=false instead of dividing by zero.
//
// Complexity (G = games, n = players, T = sweeps)
//
//   - Time:   O(T·(n + G)) log-CDF evaluations (each game is visited twice per sweep).
//   - Memory: O(n·T) for the sample matrix + O(n + G) for the neighbor index.
//
// Usage
//
//	res, err := mh.Sample(gs, numPlayers, 1000, mh.WithSeed(42))
//	if err != nil {
//	    // handle games.ErrPlayerOutOfRange, ErrNegativeIterations, ErrOptionViolation
//	}
//	rate, ok := res.AcceptanceRate()
//	sum, err := mh.Summarize(res.Samples, 100) // drop 100 burn-in sweeps
//
// Options
//
//   - DefaultOptions():        seed 0 (mapped to a fixed default), σ = 0.6, zero start, no hook.
//   - WithSeed(seed):          seed the internal source.
//   - WithRand(r):             use a caller-owned source instead.
//   - WithStepScale(σ):        random-walk scale, finite and ≥ 0.
//   - WithInitial(w0):         starting skill vector.
//   - WithOnSweep(fn):         progress hook after every sweep.
package mh
