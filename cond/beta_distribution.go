package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// BetaDistribution draws the posterior mean gamma = alpha/(alpha+beta) of a
// Beta-distributed observation set with a fixed precision, per spec.md
// §4.C.1. Bounds [1e-16, 1].
type BetaDistribution struct {
	tolerance float64
}

// NewBetaDistribution creates a BetaDistribution sampler.
func NewBetaDistribution() *BetaDistribution {
	return &BetaDistribution{tolerance: 1e-5}
}

// Draw samples gamma0's posterior given a Beta(aPrior, bPrior) prior on
// gamma and Beta(gamma*prec, (1-gamma)*prec) likelihood terms over data.
func (s *BetaDistribution) Draw(src *rng.Source, gamma0, prec, aPrior, bPrior float64, data []float64) float64 {
	obj := func(x float64) (float64, float64) {
		lp := logpdf.BetaF(aPrior, bPrior, x)
		d := logpdf.BetaDfDx(aPrior, bPrior, x)
		for _, xi := range data {
			lp += logpdf.BetaF(x*prec, (1-x)*prec, xi)
			d += logpdf.BetaDfDgamma(x, prec, xi)
		}
		return lp, d
	}

	sh := shredder.New(1e-16, 1.0, s.tolerance, obj)
	x := sh.Sample(src, gamma0)
	return clamp(x, sh.Lower, sh.Upper)
}
