package logpdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func numericalDiff(f func(float64) float64, x float64) float64 {
	const h = 1e-5
	return (f(x+h) - f(x-h)) / (2 * h)
}

func TestNormalDfDxMatchesNumerical(t *testing.T) {
	require := require.New(t)
	mu, sigma, x := 1.5, 2.0, 0.7

	got := NormalDfDx1(mu, sigma, x)
	want := numericalDiff(func(xx float64) float64 { return NormalF1(mu, sigma, xx) }, x)

	require.InDelta(want, got, 1e-4)
}

func TestNormalDfDmuMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{0.1, 0.4, -0.2, 1.1}
	sigma := 1.3

	got := NormalDfDmu(0.5, sigma, xs)
	want := numericalDiff(func(mu float64) float64 { return NormalF(mu, sigma, xs) }, 0.5)

	require.InDelta(want, got, 1e-3)
}

func TestNormalDfDsigmaMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{0.1, 0.4, -0.2, 1.1}
	mu := 0.5

	got := NormalDfDsigma(mu, 1.3, xs)
	want := numericalDiff(func(sigma float64) float64 { return NormalF(mu, sigma, xs) }, 1.3)

	require.InDelta(want, got, 1e-3)
}

func TestAltGammaDfDmeanMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{0.3, 0.5, 0.8}
	shape := 2.0

	got := AltGammaDfDmean(0.6, shape, xs)
	want := numericalDiff(func(mean float64) float64 { return AltGammaF(mean, shape, xs) }, 0.6)

	require.InDelta(want, got, 1e-3)
}

func TestAltGammaDfDshapeMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{0.3, 0.5, 0.8}
	mean := 0.6

	got := AltGammaDfDshape(mean, 2.0, xs)
	want := numericalDiff(func(shape float64) float64 { return AltGammaF(mean, shape, xs) }, 2.0)

	require.InDelta(want, got, 1e-3)
}

func TestGammaDfDalphaMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{1.1, 2.2, 0.9}
	beta := 1.5

	got := GammaDfDalpha(3.0, beta, xs)
	want := numericalDiff(func(alpha float64) float64 { return GammaF(alpha, beta, xs) }, 3.0)

	require.InDelta(want, got, 1e-3)
}

func TestGammaDfDbetaMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{1.1, 2.2, 0.9}
	alpha := 3.0

	got := GammaDfDbeta(alpha, 1.5, xs)
	want := numericalDiff(func(beta float64) float64 { return GammaF(alpha, beta, xs) }, 1.5)

	require.InDelta(want, got, 1e-3)
}

func TestBetaDfDxMatchesNumerical(t *testing.T) {
	require := require.New(t)
	alpha, beta, x := 2.0, 5.0, 0.3

	got := BetaDfDx(alpha, beta, x)
	want := numericalDiff(func(xx float64) float64 { return BetaF(alpha, beta, xx) }, x)

	require.InDelta(want, got, 1e-3)
}

func TestLogNormalDfDsigmaMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{0.5, 1.2, 0.9}
	mu := 0.1

	got := LogNormalDfDsigma(mu, 0.8, xs)
	want := numericalDiff(func(sigma float64) float64 { return LogNormalF(mu, sigma, xs) }, 0.8)

	require.InDelta(want, got, 1e-3)
}

func TestStudentsTDfDmuMatchesNumerical(t *testing.T) {
	require := require.New(t)
	xs := []float64{0.2, -0.4, 0.1}
	nu, sigma := 5.0, 1.0

	got := StudentsTDfDmu(nu, 0.0, sigma, xs)
	want := numericalDiff(func(mu float64) float64 { return StudentsTF(nu, mu, sigma, xs) }, 0.0)

	require.InDelta(want, got, 1e-3)
}

func TestFinitePanicsOnNaN(t *testing.T) {
	require.Panics(t, func() {
		Finite(math.NaN(), "test")
	})
}

func TestFinitePassesThroughFiniteValues(t *testing.T) {
	require.Equal(t, 3.0, Finite(3.0, "test"))
}
