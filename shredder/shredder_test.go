package shredder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CraigKelly/tgibbs/logpdf"
	"github.com/CraigKelly/tgibbs/rng"
)

func standardNormalObjective() Objective {
	return func(x float64) (float64, float64) {
		return logpdf.NormalF1(0, 1, x), logpdf.NormalDfDx1(0, 1, x)
	}
}

func TestSampleStandardNormalMoments(t *testing.T) {
	require := require.New(t)

	s := New(-10, 10, 1e-6, standardNormalObjective())
	src := rng.NewSource(11)

	const n = 100000
	var sum, sumSq float64
	x := 0.0
	for i := 0; i < n; i++ {
		x = s.Sample(src, x)
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	require.InDelta(0.0, mean, 0.05)
	require.InDelta(1.0, variance, 0.05)
}

func TestFindSliceEdgeReturnsLowerBoundary(t *testing.T) {
	require := require.New(t)

	// A monotonically increasing objective on [0, 1]: the slice touches the
	// lower bound whenever the slice height equals f(lower).
	s := New(0, 1, 1e-6, func(x float64) (float64, float64) {
		return x, 1.0
	})

	lowerVal, _ := s.F(s.Lower)
	edge := s.findSliceEdge(0.5, lowerVal, 0.5, 1.0, -1)

	require.InDelta(s.Lower, edge, 1e-9)
}

func TestOptimizeStaysInBounds(t *testing.T) {
	require := require.New(t)

	s := New(0.1, 5.0, 1e-4, func(x float64) (float64, float64) {
		return logpdf.AltGammaF1(1.0, x, 1.0), logpdf.AltGammaDfDshape(1.0, x, []float64{1.0})
	})

	got := s.Optimize(2.0)
	require.GreaterOrEqual(got, s.Lower)
	require.LessOrEqual(got, s.Upper)
	require.False(math.IsNaN(got))
}

func TestSampleBoundedBeta(t *testing.T) {
	require := require.New(t)

	const alpha, beta = 2.0, 5.0
	s := New(1e-6, 1-1e-6, 1e-5, func(x float64) (float64, float64) {
		return logpdf.BetaF(alpha, beta, x), logpdf.BetaDfDx(alpha, beta, x)
	})

	src := rng.NewSource(99)
	x := 0.5
	const n = 50000
	var sum float64
	for i := 0; i < n; i++ {
		x = s.Sample(src, x)
		sum += x
	}
	mean := sum / n
	expected := alpha / (alpha + beta)
	require.InDelta(expected, mean, 0.02)
}
