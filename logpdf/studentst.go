package logpdf

import "math"

// StudentsTF returns the log-density of StudentsT(nu, mu, sigma) summed over xs.
func StudentsTF(nu, mu, sigma float64, xs []float64) float64 {
	n := float64(len(xs))
	part1 := n * (lgamma((nu+1)/2) - lgamma(nu/2) - fastlog(math.Sqrt(nu*math.Pi)*sigma))

	var part2 float64
	for _, x := range xs {
		part2 += math.Log1p(sq((x - mu) / sigma) / nu)
	}

	return part1 - ((nu + 1) / 2) * part2
}

// StudentsTF1 is StudentsTF specialized to a single observation.
func StudentsTF1(nu, mu, sigma, x float64) float64 {
	part1 := lgamma((nu+1)/2) - lgamma(nu/2) - fastlog(math.Sqrt(nu*math.Pi)*sigma)
	part2 := math.Log1p(sq((x-mu)/sigma) / nu)
	return part1 - ((nu+1)/2)*part2
}

// StudentsTDfDx is d/dx of the summed log-density.
func StudentsTDfDx(nu, mu, sigma float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += (2 * (x - mu) / sq(sigma) / nu) / (1 + sq((x-mu)/sigma)/nu)
	}
	return -((nu + 1) / 2) * part
}

// StudentsTDfDmu is d/dmu of the summed log-density.
func StudentsTDfDmu(nu, mu, sigma float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += (2 * (x - mu) / sq(sigma) / nu) / (1 + sq((x-mu)/sigma)/nu)
	}
	return ((nu + 1) / 2) * part
}

// StudentsTDfDmu1 is StudentsTDfDmu specialized to a single observation.
func StudentsTDfDmu1(nu, mu, sigma, x float64) float64 {
	part := (2 * (x - mu) / sq(sigma) / nu) / (1 + sq((x-mu)/sigma)/nu)
	return ((nu + 1) / 2) * part
}

// StudentsTDfDsigma is d/dsigma of the summed log-density.
func StudentsTDfDsigma(nu, mu, sigma float64, xs []float64) float64 {
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += (2 * sq((x-mu)/sigma) / (nu * sigma)) / (1 + sq((x-mu)/sigma)/nu)
	}
	return ((nu+1)/2)*part - n/sigma
}
