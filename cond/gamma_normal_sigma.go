package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// GammaNormalSigma draws the posterior sigma of a zero-mean Normal
// likelihood under a Gamma(priorAlpha, priorBeta) prior, per spec.md
// §4.C.10. Used for condition splice sigma and experiment splice sigma.
// Bounds [1e-8, 1e5].
type GammaNormalSigma struct {
	tolerance float64
}

// NewGammaNormalSigma creates a GammaNormalSigma sampler.
func NewGammaNormalSigma() *GammaNormalSigma {
	return &GammaNormalSigma{tolerance: 1e-5}
}

// Draw samples sigma0's posterior given xs ~ Normal(0, sigma) and a
// Gamma(priorAlpha, priorBeta) prior on sigma.
func (s *GammaNormalSigma) Draw(src *rng.Source, sigma0 float64, xs []float64, priorAlpha, priorBeta float64) float64 {
	const lower, upper = 1e-8, 1e5

	obj := func(sigma float64) (float64, float64) {
		lp := logpdf.NormalF(0, sigma, xs) + logpdf.GammaF(priorAlpha, priorBeta, []float64{sigma})
		d := logpdf.NormalDfDsigma(0, sigma, xs) + logpdf.GammaDfDx(priorAlpha, priorBeta, []float64{sigma})
		return lp, d
	}

	sh := shredder.New(lower, upper, s.tolerance, obj)
	x := sh.Sample(src, sigma0)
	return clamp(x, lower, upper)
}
