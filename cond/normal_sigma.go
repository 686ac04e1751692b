package cond

import (
	"math"

	"github.com/CraigKelly/tgibbs/rng"
)

// NormalSigma draws directly from the conjugate Normal-Gamma posterior
// precision, per spec.md §4.C.3: draw tau ~ Gamma(alpha+n/2, beta+sum(xi^2)/2),
// return 1/sqrt(tau).
type NormalSigma struct{}

// Draw returns a posterior draw for sigma given a Gamma(priorAlpha,
// priorBeta) prior on the precision and n observations xs ~ Normal(0, sigma).
func (NormalSigma) Draw(src *rng.Source, xs []float64, priorAlpha, priorBeta float64) float64 {
	n := float64(len(xs))

	var sumSq float64
	for _, x := range xs {
		sumSq += x * x
	}

	posteriorAlpha := priorAlpha + n/2
	posteriorBeta := priorBeta + sumSq/2

	tau := src.Gamma(posteriorAlpha, posteriorBeta)
	return math.Sqrt(1 / tau)
}
