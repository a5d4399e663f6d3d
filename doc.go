// Package mhrank infers player skills from win/loss records under the probit
// model, where player i beats player j with probability Φ(w_i − w_j) and
// every skill has a standard normal prior.
//
// What is in the module?
//
//	games/      Game records, validation and the CSR neighbor index
//	probit/     numerically stable log Φ, prior and local log-posterior
//	matrix/     dense players × sweeps sample matrix with row statistics
//	mh/         single-site Metropolis-Hastings sampler, summaries, ranking
//	gameio/     CSV/JSON game readers, sample and summary writers
//	store/      SQLite persistence for games and sampling runs
//	cmd/mhrank  command-line front end
//
// Data flow:
//
//	[]games.Game ──► games.Index ──► mh.SampleIndex ──► *matrix.Dense
//	                                                     │
//	                                   mh.Summarize ◄────┘
//
// Quick start:
//
//	res, err := mh.Sample(gs, numPlayers, 1000, mh.WithSeed(1))
//	sums, err := mh.Summarize(res.Samples, 100)
//	for _, s := range mh.Rank(sums) { ... }
//
// Sampling is sequential and deterministic for a given seed; one index may
// back several concurrent chains.
package mhrank
