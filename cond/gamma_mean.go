package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// GammaMean draws the posterior mean of an AltGamma(mean, shape) likelihood
// (fixed shape) under an AltGamma(priorMean, priorShape) prior, per
// spec.md §4.C.6. Bounds [1e-12, 1] for abundance means.
type GammaMean struct {
	Lower, Upper, tolerance float64
}

// NewGammaMean creates a GammaMean sampler bounded to [lower, upper].
func NewGammaMean(lower, upper float64) *GammaMean {
	return &GammaMean{Lower: lower, Upper: upper, tolerance: 1e-10}
}

// Draw samples mean0's posterior given shape, xs ~ AltGamma(mean, shape),
// and an AltGamma(priorMean, priorShape) prior on mean.
func (s *GammaMean) Draw(src *rng.Source, mean0, shape float64, xs []float64, priorMean, priorShape float64) float64 {
	obj := func(mean float64) (float64, float64) {
		lp := logpdf.AltGammaF(mean, shape, xs) + logpdf.AltGammaF1(priorMean, priorShape, mean)
		d := logpdf.AltGammaDfDmean(mean, shape, xs) + logpdf.AltGammaDfDx(priorMean, priorShape, []float64{mean})
		return lp, d
	}

	sh := shredder.New(s.Lower, s.Upper, s.tolerance, obj)
	x := sh.Sample(src, mean0)
	return clamp(x, s.Lower, s.Upper)
}
