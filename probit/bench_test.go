package probit_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/mhrank/games"
	"github.com/katalvlaran/mhrank/probit"
)

// BenchmarkLogNormCDF measures the three regimes in one mixed stream.
func BenchmarkLogNormCDF(b *testing.B) {
	xs := []float64{-45, -21, -3, 0, 2.5, 7}
	var sink float64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink += probit.LogNormCDF(xs[i%len(xs)])
	}
	_ = sink
}

// BenchmarkLocalLogProb_Degree64 measures one player's log-prob with 64 games.
func BenchmarkLocalLogProb_Degree64(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	w := make([]float64, 65)
	for i := range w {
		w[i] = r.NormFloat64()
	}
	nbrs := make([]games.Neighbor, 64)
	for k := range nbrs {
		s := games.Win
		if k%3 == 0 {
			s = games.Loss
		}
		nbrs[k] = games.Neighbor{Opponent: k + 1, Sign: s}
	}
	var sink float64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink += probit.LocalLogProb(w[0], w, nbrs)
	}
	_ = sink
}
