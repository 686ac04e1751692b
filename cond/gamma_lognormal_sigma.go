package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// GammaLogNormalSigma draws the posterior sigma of a LogNormal likelihood
// whose observations each carry their own mu, under a Gamma(priorAlpha,
// priorBeta) prior, per spec.md §4.C.11. Bounds [1e-8, 1e5].
//
// The prior derivative term uses logpdf.GammaDfDx, the Dx variant, per
// spec.md §9's open question: the source wires the non-derivative GammaF
// where a Dx call belongs. This is not replicated here.
type GammaLogNormalSigma struct {
	tolerance float64
}

// NewGammaLogNormalSigma creates a GammaLogNormalSigma sampler.
func NewGammaLogNormalSigma() *GammaLogNormalSigma {
	return &GammaLogNormalSigma{tolerance: 1e-5}
}

// Draw samples sigma0's posterior given per-observation means mus, xs[i] ~
// LogNormal(mus[i], sigma), and a Gamma(priorAlpha, priorBeta) prior.
func (s *GammaLogNormalSigma) Draw(src *rng.Source, mus []float64, sigma0 float64, xs []float64, priorAlpha, priorBeta float64) float64 {
	const lower, upper = 1e-8, 1e5

	obj := func(sigma float64) (float64, float64) {
		var lp, d float64
		for i, x := range xs {
			lp += logpdf.LogNormalF(mus[i], sigma, []float64{x})
			d += logpdf.LogNormalDfDsigma(mus[i], sigma, []float64{x})
		}
		lp += logpdf.GammaF(priorAlpha, priorBeta, []float64{sigma})
		d += logpdf.GammaDfDx(priorAlpha, priorBeta, []float64{sigma})
		return lp, d
	}

	sh := shredder.New(lower, upper, s.tolerance, obj)
	x := sh.Sample(src, sigma0)
	return clamp(x, lower, upper)
}
