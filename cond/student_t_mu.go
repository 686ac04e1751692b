package cond

import (
	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// StudentTMu draws the posterior location of a fixed-(nu,sigma) Student-t
// likelihood under a Normal prior, per spec.md §4.C.5. Used by the
// experiment-level splice-mean worker, bounds typically [-1, 2].
type StudentTMu struct {
	Lower, Upper, tolerance float64
}

// NewStudentTMu creates a StudentTMu sampler bounded to [lower, upper].
func NewStudentTMu(lower, upper float64) *StudentTMu {
	return &StudentTMu{Lower: lower, Upper: upper, tolerance: 1e-5}
}

// Draw samples mu0's posterior given a Normal(priorMu, priorSigma) prior
// and n observations xs ~ StudentsT(nu, mu, sigma).
func (s *StudentTMu) Draw(src *rng.Source, mu0, nu, sigma float64, xs []float64, priorMu, priorSigma float64) float64 {
	obj := func(mu float64) (float64, float64) {
		lp := logpdf.NormalF1(priorMu, priorSigma, mu) + logpdf.StudentsTF(nu, mu, sigma, xs)
		d := logpdf.NormalDfDx1(priorMu, priorSigma, mu) + logpdf.StudentsTDfDmu(nu, mu, sigma, xs)
		return lp, d
	}

	sh := shredder.New(s.Lower, s.Upper, s.tolerance, obj)
	x := sh.Sample(src, mu0)
	return clamp(x, s.Lower, s.Upper)
}
