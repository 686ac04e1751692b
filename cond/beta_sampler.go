package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// BetaSampler draws the posterior rate of a SqInverseGamma likelihood
// (fixed shape alpha) under an InverseGamma(alphaBeta, betaBeta) prior,
// per spec.md §4.C.9. No worker or coordinator code calls it;
// experiment_splice_sigma is drawn with GammaNormalSigma.
type BetaSampler struct {
	tolerance float64
}

// NewBetaSampler creates a BetaSampler.
func NewBetaSampler() *BetaSampler {
	return &BetaSampler{tolerance: 1e-5}
}

// Draw samples beta0's posterior given alpha, sigmas ~ SqInvGamma(alpha,
// beta), and an InvGamma(alphaBeta, betaBeta) prior on beta.
func (s *BetaSampler) Draw(src *rng.Source, beta0, alpha float64, alphaBeta, betaBeta float64, sigmas []float64) float64 {
	const lower, upper = 1e-16, 1e5

	obj := func(beta float64) (float64, float64) {
		lp := logpdf.InvGammaF(alphaBeta, betaBeta, []float64{beta}) + logpdf.SqInvGammaF(alpha, beta, sigmas)
		d := logpdf.InvGammaDfDx(alphaBeta, betaBeta, []float64{beta}) + logpdf.SqInvGammaDfDbeta(alpha, beta, sigmas)
		return lp, d
	}

	sh := shredder.New(lower, upper, s.tolerance, obj)
	x := sh.Sample(src, beta0)
	return clamp(x, lower, upper)
}
