package logpdf

import "gonum.org/v1/gonum/mathext"

// SqInvGammaF returns the log-density of the squared-inverse-Gamma
// distribution (x^2 ~ InverseGamma(alpha, beta)) summed over xs. Used by
// BetaSampler's likelihood over standard-deviation-like quantities.
func SqInvGammaF(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		x2 := x * x
		part += (alpha+1)*fastlog(x2) + beta/x2
	}
	return n*(alpha*fastlog(beta)-lgamma(alpha)) - part
}

// SqInvGammaDfDx is d/dx of the summed log-density.
func SqInvGammaDfDx(alpha, beta float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += 2*beta/cb(x) - (2*alpha+2)/x
	}
	return part
}

// SqInvGammaDfDalpha is d/dalpha of the summed log-density.
func SqInvGammaDfDalpha(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += fastlog(x * x)
	}
	return n*(fastlog(beta)-mathext.Digamma(alpha)) - part
}

// SqInvGammaDfDbeta is d/dbeta of the summed log-density.
func SqInvGammaDfDbeta(alpha, beta float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += 1 / (x * x)
	}
	return n*(alpha/beta) - part
}
