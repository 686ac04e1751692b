package logpdf

import "gonum.org/v1/gonum/mathext"

// GammaF returns the log-density of Gamma(alpha, beta) (rate
// parameterization) summed over xs.
func GammaF(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part1, part2 float64
	for _, x := range xs {
		part1 += fastlog(x)
		part2 += x
	}
	return n*(alpha*fastlog(beta)-lgamma(alpha)) + (alpha-1)*part1 - beta*part2
}

// GammaDfDx is d/dx of the summed log-density.
func GammaDfDx(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += (alpha - 1) / x
	}
	return part - n*beta
}

// GammaDfDalpha is d/dalpha of the summed log-density.
func GammaDfDalpha(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += fastlog(x)
	}
	return n*(fastlog(beta)-mathext.Digamma(alpha)) + part
}

// GammaDfDbeta is d/dbeta of the summed log-density.
func GammaDfDbeta(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += x
	}
	return n*(alpha/beta) - part
}
