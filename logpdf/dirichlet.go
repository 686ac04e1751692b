package logpdf

import "gonum.org/v1/gonum/mathext"

// DirichletF returns the log-density of a Dirichlet distribution
// parameterized by a single concentration scalar alpha and a row-stochastic
// mean matrix, evaluated against a matching data matrix. Both mean and
// data are row-major n*m buffers. Reserved for future splicing work, not
// on the hot path of the baseline sampler (spec.md §4.A).
func DirichletF(alpha float64, mean, data []float64, n, m int) float64 {
	var part float64
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			idx := i*m + j
			am := alpha * mean[idx]
			part += (am-1)*fastlog(data[idx]) - lgamma(am)
		}
	}
	return float64(n)*lgamma(alpha) + part
}

// DirichletDfDalpha is d/dalpha of DirichletF.
func DirichletDfDalpha(alpha float64, mean, data []float64, n, m int) float64 {
	var part float64
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			idx := i*m + j
			part += mean[idx] * (fastlog(data[idx]) - mathext.Digamma(alpha*mean[idx]))
		}
	}
	return float64(n)*mathext.Digamma(alpha) + part
}
