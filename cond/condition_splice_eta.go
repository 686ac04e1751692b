package cond

import (
	"math"

	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/shredder"
)

// ConditionSpliceEta draws the affine rescaling factor eta that decouples
// condition splice mean and sigma updates, per spec.md §4.C.12. Bounds
// [-10, 10].
//
// The posterior combines, per condition c: a Student-t prior evaluated at
// the rescaled condition mean itself (so only its sigma-dependent
// normalizing term varies with eta) and a Normal observation likelihood
// with sigma = |eta| * unadjSigma; plus a single Gamma prior term on that
// sigma. This objective carries no analytic gradient in the source this is
// grounded on (the affine reparameterization makes one inconvenient to
// express) -- d is always 0, so Shredder falls back to bisection when
// bracketing this conditional. That is expected, not a bug.
type ConditionSpliceEta struct {
	tolerance float64
}

// NewConditionSpliceEta creates a ConditionSpliceEta sampler.
func NewConditionSpliceEta() *ConditionSpliceEta {
	return &ConditionSpliceEta{tolerance: 1e-5}
}

// Draw samples eta0's posterior. unadjMu and sampleMu are per-condition
// (len C); spliceData is per-sample (len K), the rescaled proportion data
// for this (tgroup, member) pair; conditionSamples[c] lists the sample
// indices belonging to condition c.
func (s *ConditionSpliceEta) Draw(
	src *rng.Source,
	eta0 float64,
	unadjMu []float64,
	unadjSigma float64,
	spliceData []float64,
	sampleMu []float64,
	conditionSamples [][]int,
	experimentSpliceNu, experimentSpliceMu, experimentSpliceSigma float64,
	conditionSpliceAlpha, conditionSpliceBeta float64,
) float64 {
	const lower, upper = -10, 10

	obj := func(eta float64) (float64, float64) {
		sigma := math.Abs(eta) * unadjSigma

		var lp float64
		for c, members := range conditionSamples {
			conditionMu := eta*unadjMu[c] + sampleMu[c]

			lp += logpdf.StudentsTF1(experimentSpliceNu, conditionMu, sigma, conditionMu)

			data := make([]float64, len(members))
			for l, sampleIdx := range members {
				data[l] = spliceData[sampleIdx]
			}
			lp += logpdf.NormalF(conditionMu, sigma, data)
		}

		lp += logpdf.GammaF(conditionSpliceAlpha, conditionSpliceBeta, []float64{sigma})

		return lp, 0
	}

	sh := shredder.New(lower, upper, s.tolerance, obj)
	x := sh.Sample(src, eta0)
	return clamp(x, lower, upper)
}
