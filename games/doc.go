// Package games holds pairwise game records and builds the per-player
// neighbor index consumed by the skill sampler.
//
// What
//
//   - Game is an ordered (Winner, Loser) pair of player indices in [0, n).
//   - BuildIndex groups games by player into a CSR (compressed sparse row)
//     layout: one flat arena of Neighbor records plus an offsets table, so
//     player i owns arena[offsets[i]:offsets[i+1]].
//   - Every game contributes exactly one record to each of its two players,
//     with opposite signs: +1 on the winner's side, -1 on the loser's side.
//
// Determinism
//
//	A player's neighbor slice lists their games in input order. The order
//	has no effect on the posterior, but it fixes the floating-point
//	summation order of the likelihood and therefore the exact sample path.
//
// Complexity (G = number of games, N = number of players)
//
//   - BuildIndex: Time O(N + G), Memory O(N + G); two passes, no maps.
//   - Neighbors/Degree/Record: O(1) (Record is O(deg)).
//
// Errors
//
//   - ErrInvalidPlayerCount  if n < 0.
//   - ErrPlayerOutOfRange    if any index falls outside [0, n).
//
// Usage
//
//	idx, err := games.BuildIndex(3, []games.Game{{Winner: 0, Loser: 1}, {Winner: 2, Loser: 0}})
//	if err != nil {
//	    // handle ErrPlayerOutOfRange, ...
//	}
//	for _, nb := range idx.Neighbors(0) {
//	    _ = nb.Opponent // 1, then 2
//	    _ = nb.Sign     // +1, then -1
//	}
package games
