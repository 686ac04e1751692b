package cond

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CraigKelly/tgibbs/rng"
)

// TestNormalMuConjugateRoundTrip checks spec.md §8's Normal-Inverse-Gamma
// round-trip: over 10^4 draws from synthetic data, the direct-draw
// posterior mean and variance must match the closed-form Normal-Normal
// update within 2 standard errors.
func TestNormalMuConjugateRoundTrip(t *testing.T) {
	require := require.New(t)

	const priorMu, priorSigma = 1.5, 2.0
	const sigma = 0.8
	xs := []float64{2.1, 1.9, 2.3, 1.7, 2.0, 2.2, 1.8}

	priorVar := priorSigma * priorSigma
	varr := sigma * sigma
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	part := 1/priorVar + n/varr
	wantMu := (priorMu/priorVar + sum/varr) / part
	wantVar := 1 / part

	src := rng.NewSource(7)
	var mu NormalMu
	const draws = 10000
	var drawSum, drawSumSq float64
	for i := 0; i < draws; i++ {
		x := mu.Draw(src, sigma, xs, priorMu, priorSigma)
		drawSum += x
		drawSumSq += x * x
	}
	gotMu := drawSum / draws
	gotVar := drawSumSq/draws - gotMu*gotMu

	se := math.Sqrt(wantVar / draws)
	require.InDelta(wantMu, gotMu, 2*se)
	require.InDelta(wantVar, gotVar, 2*0.05*wantVar+1e-6)
}

// TestNormalSigmaConjugateRoundTrip checks spec.md §8's Normal-Inverse-Gamma
// round-trip for the conjugate sigma draw: the drawn precision's mean
// should match the analytic Gamma posterior mean within 2 standard errors.
func TestNormalSigmaConjugateRoundTrip(t *testing.T) {
	require := require.New(t)

	const priorAlpha, priorBeta = 3.0, 2.0
	xs := []float64{0.5, -0.3, 0.8, -0.1, 0.2, -0.6, 0.4}

	n := float64(len(xs))
	var sumSq float64
	for _, x := range xs {
		sumSq += x * x
	}
	postAlpha := priorAlpha + n/2
	postBeta := priorBeta + sumSq/2
	wantTauMean := postAlpha / postBeta
	wantTauVar := postAlpha / (postBeta * postBeta)

	src := rng.NewSource(13)
	var ns NormalSigma
	const draws = 10000
	var tauSum float64
	for i := 0; i < draws; i++ {
		sigma := ns.Draw(src, xs, priorAlpha, priorBeta)
		tauSum += 1 / (sigma * sigma)
	}
	gotTauMean := tauSum / draws

	se := math.Sqrt(wantTauVar / draws)
	require.InDelta(wantTauMean, gotTauMean, 2*se)
}

// TestNormalMuZeroObservationsDrawsFromPrior checks spec.md §8's boundary
// property: passing n=0 to a conditional with vectorized likelihood
// yields a draw from the prior.
func TestNormalMuZeroObservationsDrawsFromPrior(t *testing.T) {
	require := require.New(t)

	const priorMu, priorSigma = -0.4, 1.3
	src := rng.NewSource(21)
	var mu NormalMu

	const draws = 10000
	var sum, sumSq float64
	for i := 0; i < draws; i++ {
		x := mu.Draw(src, 0.9, nil, priorMu, priorSigma)
		sum += x
		sumSq += x * x
	}
	gotMu := sum / draws
	gotVar := sumSq/draws - gotMu*gotMu

	se := math.Sqrt(priorSigma * priorSigma / draws)
	require.InDelta(priorMu, gotMu, 2*se)
	require.InDelta(priorSigma*priorSigma, gotVar, 0.1*priorSigma*priorSigma+1e-6)
}

// TestNormalSigmaZeroObservationsDrawsFromPrior mirrors the above for the
// conjugate sigma draw: with no observations the posterior Gamma collapses
// to the prior Gamma(priorAlpha, priorBeta) on the precision.
func TestNormalSigmaZeroObservationsDrawsFromPrior(t *testing.T) {
	require := require.New(t)

	const priorAlpha, priorBeta = 4.0, 1.5
	src := rng.NewSource(23)
	var ns NormalSigma

	const draws = 10000
	var tauSum float64
	for i := 0; i < draws; i++ {
		sigma := ns.Draw(src, nil, priorAlpha, priorBeta)
		tauSum += 1 / (sigma * sigma)
	}
	gotTauMean := tauSum / draws
	wantTauMean := priorAlpha / priorBeta

	se := math.Sqrt(priorAlpha / (priorBeta * priorBeta) / draws)
	require.InDelta(wantTauMean, gotTauMean, 2*se)
}

// TestBetaDistributionStaysInBounds exercises the BetaDistribution
// conditional (spec.md §4.C.1), otherwise unwired outside its own file,
// per spec.md §8's bounds invariant: every draw clamps into [1e-16, 1].
func TestBetaDistributionStaysInBounds(t *testing.T) {
	require := require.New(t)

	bd := NewBetaDistribution()
	src := rng.NewSource(31)

	gamma := 0.4
	for i := 0; i < 1000; i++ {
		gamma = bd.Draw(src, gamma, 2.0, 5.0, 10.0, []float64{0.3, 0.5, 0.4, 0.35})
		require.GreaterOrEqual(gamma, 1e-16)
		require.LessOrEqual(gamma, 1.0)
		require.False(math.IsNaN(gamma))
	}
}

// TestBetaSamplerStaysInBounds exercises BetaSampler (spec.md §4.C.9): the
// source declares this sampler but never calls it (see DESIGN.md's gibbs
// entry), so this test is the only thing that validates it.
func TestBetaSamplerStaysInBounds(t *testing.T) {
	require := require.New(t)

	bs := NewBetaSampler()
	src := rng.NewSource(37)

	beta := 0.5
	sigmas := []float64{0.2, 0.25, 0.3, 0.22}
	for i := 0; i < 1000; i++ {
		beta = bs.Draw(src, beta, 2.0, 2.0, 1.0, sigmas)
		require.GreaterOrEqual(beta, 1e-16)
		require.LessOrEqual(beta, 1e5)
		require.False(math.IsNaN(beta))
	}
}

// TestGammaLogNormalSigmaStaysInBounds exercises GammaLogNormalSigma
// (spec.md §4.C's GammaLogNormalSigma, §9's first open question about its
// prior derivative), otherwise unwired outside its own file.
func TestGammaLogNormalSigmaStaysInBounds(t *testing.T) {
	require := require.New(t)

	gs := NewGammaLogNormalSigma()
	src := rng.NewSource(41)

	sigma := 0.5
	mus := []float64{0.1, -0.2, 0.3, 0.05}
	xs := []float64{1.1, 0.8, 1.3, 1.0}
	for i := 0; i < 1000; i++ {
		sigma = gs.Draw(src, mus, sigma, xs, 2.0, 1.0)
		require.GreaterOrEqual(sigma, 1e-8)
		require.LessOrEqual(sigma, 1e5)
		require.False(math.IsNaN(sigma))
	}
}
