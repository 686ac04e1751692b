package logpdf

import "gonum.org/v1/gonum/mathext"

// InvGammaF returns the log-density of InverseGamma(alpha, beta) summed over xs.
func InvGammaF(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += (alpha+1)*fastlog(x) + beta/x
	}
	return n*(alpha*fastlog(beta)-lgamma(alpha)) - part
}

// InvGammaDfDx is d/dx of the summed log-density.
func InvGammaDfDx(alpha, beta float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += beta/sq(x) - (alpha+1)/x
	}
	return part
}

// InvGammaDfDalpha is d/dalpha of the summed log-density.
func InvGammaDfDalpha(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += fastlog(x)
	}
	return n*(fastlog(beta)-mathext.Digamma(alpha)) - part
}

// InvGammaDfDbeta is d/dbeta of the summed log-density.
func InvGammaDfDbeta(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += 1 / x
	}
	return n*(alpha/beta) - part
}
