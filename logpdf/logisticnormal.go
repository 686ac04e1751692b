package logpdf

import "math"

// LogisticNormalF returns the log-density at a single x of a distribution
// whose logit is Normal(mu, sigma). Reserved for future splicing work, not
// on the hot path of the baseline sampler (spec.md §4.A).
func LogisticNormalF(mu, sigma, x float64) float64 {
	return -fastlog(sigma) - fastlog(math.Sqrt(2*math.Pi)) -
		sq(fastlog(x/(1-x))-mu)/(2*sq(sigma)) -
		fastlog(x) - fastlog(1-x)
}

// LogisticNormalDfDx is d/dx of LogisticNormalF.
func LogisticNormalDfDx(mu, sigma, x float64) float64 {
	y := fastlog(x / (1 - x))
	return (1 / (1 - x)) - (1 / x) - (mu-y)/(sq(sigma)*(x-1)*x)
}
