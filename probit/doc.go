// Package probit implements the probit pairwise-comparison likelihood:
//
//	P(i beats j) = Φ(w_i − w_j)
//
// where Φ is the standard normal CDF, together with a standard normal prior
// on every skill.
//
// The only numerically delicate piece is log Φ(x). Computing log(Φ(x))
// directly underflows to −Inf once Φ(x) drops below the smallest float64
// (x ≈ −38), which would make any proposal that widens a large skill gap
// look impossible. LogNormCDF evaluates log Φ through three regimes:
//
//	x > 0        log Φ(x) = log1p(−Φ(−x))                 (avoid 1−ε cancellation)
//	−20 ≤ x ≤ 0  log Φ(x) = log(erfc(−x/√2)/2)
//	x < −20      log Φ(x) = log φ(x) − log(−x) + log S(x)  (asymptotic series)
//
// with S(x) = 1 − 1/x² + 3/x⁴ − 15/x⁶ + …, truncated once terms stop shrinking.
//
// LocalLogProb combines prior and likelihood for one player given the
// current skills of every opponent in its neighbor list; it is the hot
// function of the sampler and allocates nothing.
package probit
