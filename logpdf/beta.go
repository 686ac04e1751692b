package logpdf

import "gonum.org/v1/gonum/mathext"

// BetaF returns the log-density of Beta(alpha, beta) at a single x.
func BetaF(alpha, beta, x float64) float64 {
	return (alpha-1)*fastlog(x) + (beta-1)*fastlog(1-x) - lbeta(alpha, beta)
}

// BetaDfDx is d/dx of the log-density.
func BetaDfDx(alpha, beta, x float64) float64 {
	return (alpha-1)/x - (beta-1)/(1-x)
}

// BetaDfDgamma is d/dgamma of the log-density reparameterized by
// gamma = alpha/(alpha+beta) and precision c = alpha+beta, i.e.
// alpha = gamma*c, beta = (1-gamma)*c. Used by BetaDistributionSampler,
// whose free variable is the mean gamma rather than alpha directly.
func BetaDfDgamma(gamma, c, x float64) float64 {
	return c * (fastlog(x/(1-x)) -
		mathext.Digamma(gamma*c) +
		mathext.Digamma((1-gamma)*c))
}
