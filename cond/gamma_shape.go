package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// GammaShape draws the posterior shape of an AltGamma likelihood whose
// observations each carry their own mean, under a Gamma(priorAlpha,
// priorBeta) prior, per spec.md §4.C.7. Bounds [0.1, 5].
type GammaShape struct {
	Lower, Upper, tolerance float64
}

// NewGammaShape creates a GammaShape sampler bounded to [lower, upper].
func NewGammaShape(lower, upper float64) *GammaShape {
	return &GammaShape{Lower: lower, Upper: upper, tolerance: 1e-2}
}

// Draw samples shape0's posterior given per-observation means, xs ~
// AltGamma(means[i], shape), and a Gamma(priorAlpha, priorBeta) prior.
func (s *GammaShape) Draw(src *rng.Source, means []float64, shape0 float64, xs []float64, priorAlpha, priorBeta float64) float64 {
	obj := func(shape float64) (float64, float64) {
		lp := logpdf.AltGammaMeansF(means, shape, xs) + logpdf.GammaF(priorAlpha, priorBeta, []float64{shape})
		d := logpdf.AltGammaDfDshapeMeans(means, shape, xs) + logpdf.GammaDfDx(priorAlpha, priorBeta, []float64{shape})
		return lp, d
	}

	sh := shredder.New(s.Lower, s.Upper, s.tolerance, obj)
	x := sh.Sample(src, shape0)
	return clamp(x, s.Lower, s.Upper)
}
