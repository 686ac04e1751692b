package cond

import (
	"math"

	"github.com/CraigKelly/tgibbs/rng"
)

// NormalMu draws directly from the conjugate Normal-Normal posterior mean,
// per spec.md §4.C.2: no shredder involved.
type NormalMu struct{}

// Draw returns a posterior draw for mu given a Normal(priorMu, priorSigma)
// prior and n observations xs ~ Normal(mu, sigma).
func (NormalMu) Draw(src *rng.Source, sigma float64, xs []float64, priorMu, priorSigma float64) float64 {
	priorVar := priorSigma * priorSigma
	varr := sigma * sigma
	n := float64(len(xs))

	var sum float64
	for _, x := range xs {
		sum += x
	}

	part := 1/priorVar + n/varr
	posteriorMu := (priorMu/priorVar + sum/varr) / part
	posteriorSigma := math.Sqrt(1 / part)

	return posteriorMu + src.NormFloat64()*posteriorSigma
}
