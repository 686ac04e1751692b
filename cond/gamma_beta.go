package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// GammaBeta draws the posterior rate of a Gamma likelihood (fixed alpha)
// under a Gamma(betaA, betaB) prior, per spec.md §4.C.8. Used to draw
// cshape_beta and csplice_beta. Bounds [1e-10, 1e5].
type GammaBeta struct {
	tolerance float64
}

// NewGammaBeta creates a GammaBeta sampler.
func NewGammaBeta() *GammaBeta {
	return &GammaBeta{tolerance: 1e-4}
}

// Draw samples beta0's posterior given alpha, xs ~ Gamma(alpha, beta), and
// a Gamma(betaA, betaB) prior on beta.
func (s *GammaBeta) Draw(src *rng.Source, beta0, alpha float64, xs []float64, betaA, betaB float64) float64 {
	const lower, upper = 1e-10, 1e5

	obj := func(beta float64) (float64, float64) {
		lp := logpdf.GammaF(alpha, beta, xs) + logpdf.GammaF(betaA, betaB, []float64{beta})
		d := logpdf.GammaDfDbeta(alpha, beta, xs) + logpdf.GammaDfDx(betaA, betaB, []float64{beta})
		return lp, d
	}

	sh := shredder.New(lower, upper, s.tolerance, obj)
	x := sh.Sample(src, beta0)
	return clamp(x, lower, upper)
}
