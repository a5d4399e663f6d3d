package probit

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/mhrank/games"
)

const (
	// upperSwitch: above this, Φ(x) > 1/2 and log1p(−Φ(−x)) keeps full relative precision.
	upperSwitch = 0.0

	// lowerSwitch: below this the erfc form loses relative accuracy; use the series.
	lowerSwitch = -20.0

	// maxSeriesTerms bounds the asymptotic expansion; it is divergent, so we
	// stop at the smallest term anyway.
	maxSeriesTerms = 20

	// logSqrt2Pi = log(√(2π)).
	logSqrt2Pi = 0.91893853320467274178032973640561763986139747363778
)

// prior is the standard normal skill prior.
var prior = distuv.UnitNormal

// LogNormCDF returns log Φ(x) for the standard normal CDF Φ, accurate for
// large negative x where Φ(x) itself underflows.
//
// Behavior highlights:
//   - LogNormCDF(+Inf) = 0, LogNormCDF(−Inf) = −Inf, NaN propagates.
//   - Finite for every finite x.
//
// Complexity: O(1).
func LogNormCDF(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x > upperSwitch:
		return math.Log1p(-0.5 * math.Erfc(x/math.Sqrt2))
	case x >= lowerSwitch:
		return math.Log(0.5 * math.Erfc(-x/math.Sqrt2))
	case math.IsInf(x, -1):
		return math.Inf(-1)
	}

	return logNormCDFTail(x)
}

// logNormCDFTail evaluates the Mills-ratio expansion for x < lowerSwitch:
//
//	Φ(x) = φ(x)/(−x) · Σ_k (−1)^k (2k−1)!! / x^(2k)
func logNormCDFTail(x float64) float64 {
	x2 := x * x
	var (
		sum  = 1.0
		term = 1.0
		prev = math.Inf(1)
		k    int
	)
	for k = 1; k <= maxSeriesTerms; k++ {
		term *= -float64(2*k-1) / x2
		if math.Abs(term) >= prev {
			break
		}
		prev = math.Abs(term)
		sum += term
		if prev < 1e-17*math.Abs(sum) {
			break
		}
	}

	return -0.5*x2 - logSqrt2Pi - math.Log(-x) + math.Log(sum)
}

// NormCDF returns Φ(x).
func NormCDF(x float64) float64 { return prior.CDF(x) }

// LogPrior returns the standard normal log-density at w.
func LogPrior(w float64) float64 { return prior.LogProb(w) }

// LocalLogProb returns the unnormalized log posterior of one player's skill
// wi with every opponent held at its current value in w:
//
//	logpdf_N(0,1)(wi) + Σ_{(j,s) ∈ nbrs} log Φ(s·(wi − w[j]))
//
// An empty nbrs leaves only the prior term.
//
// Complexity: O(len(nbrs)), no allocations.
func LocalLogProb(wi float64, w []float64, nbrs []games.Neighbor) float64 {
	lp := LogPrior(wi)
	for _, nb := range nbrs {
		lp += LogNormCDF(nb.Sign * (wi - w[nb.Opponent]))
	}

	return lp
}

// WinProbability returns Φ(wi − wj), the probability that a player with
// skill wi beats one with skill wj.
func WinProbability(wi, wj float64) float64 { return NormCDF(wi - wj) }
