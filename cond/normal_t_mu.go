package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// NormalTMu draws the posterior mean of a fixed-sigma Normal likelihood
// under a Student-t prior, per spec.md §4.C.4. Used by the condition-level
// splice-mean worker, with bounds passed by the caller (typically [-1, 2]).
type NormalTMu struct {
	Lower, Upper, tolerance float64
}

// NewNormalTMu creates a NormalTMu sampler bounded to [lower, upper].
func NewNormalTMu(lower, upper float64) *NormalTMu {
	return &NormalTMu{Lower: lower, Upper: upper, tolerance: 1e-5}
}

// Draw samples mu0's posterior given a Student-t(priorNu, priorMu,
// priorSigma) prior and n observations xs ~ Normal(mu, sigma).
func (s *NormalTMu) Draw(src *rng.Source, mu0, sigma float64, xs []float64, priorNu, priorMu, priorSigma float64) float64 {
	obj := func(mu float64) (float64, float64) {
		lp := logpdf.StudentsTF1(priorNu, priorMu, priorSigma, mu) + logpdf.NormalF(mu, sigma, xs)
		d := -logpdf.StudentsTDfDmu1(priorNu, priorMu, priorSigma, mu) + logpdf.NormalDfDmu(mu, sigma, xs)
		return lp, d
	}

	sh := shredder.New(s.Lower, s.Upper, s.tolerance, obj)
	x := sh.Sample(src, mu0)
	return clamp(x, s.Lower, s.Upper)
}
