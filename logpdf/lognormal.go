package logpdf

// LogNormalF returns the log-density of LogNormal(mu, sigma) summed over xs.
func LogNormalF(mu, sigma float64, xs []float64) float64 {
	n := float64(len(xs))
	part1 := n * (neglog2piDiv2 - fastlog(sigma))
	var part2 float64
	for _, x := range xs {
		logx := fastlog(x)
		part2 += sq(logx-mu)/(2*sq(sigma)) + logx
	}
	return part1 - part2
}

// LogNormalDfDx is d/dx for a single observation.
func LogNormalDfDx(mu, sigma, x float64) float64 {
	return (mu-fastlog(x))/(x*sq(sigma)) - 1.0/x
}

// LogNormalDfDmu is d/dmu of the summed log-density.
func LogNormalDfDmu(mu, sigma float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += fastlog(x) - mu
	}
	return part / sq(sigma)
}

// LogNormalDfDsigma is d/dsigma of the summed log-density. It is the
// likelihood-derivative term of cond.GammaLogNormalSigma; that sampler's
// prior-derivative term is logpdf.GammaDfDx.
func LogNormalDfDsigma(mu, sigma float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += sq(fastlog(x) - mu)
	}
	n := float64(len(xs))
	return part/cb(sigma) - n/sigma
}
