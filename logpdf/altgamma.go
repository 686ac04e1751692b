package logpdf

import "gonum.org/v1/gonum/mathext"

// AltGammaF returns the log-density of the mean/shape parameterization of
// the Gamma distribution (scale = mean/shape) summed over xs. This is the
// parameterization used throughout the per-sample, per-transcript
// likelihoods -- GammaMeanSampler and GammaShapeSampler both target it.
func AltGammaF(mean, shape float64, xs []float64) float64 {
	scale := mean / shape
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += (shape-1.0)*fastlog(x) - x/scale
	}
	return -n*(lgamma(shape)+shape*fastlog(scale)) + part
}

// AltGammaF1 is AltGammaF specialized to a single observation.
func AltGammaF1(mean, shape, x float64) float64 {
	scale := mean / shape
	part := (shape-1.0)*fastlog(x) - x/scale
	return -(lgamma(shape) + shape*fastlog(scale)) + part
}

// AltGammaMeansF evaluates the log-density when every observation has its
// own mean (xs[i] ~ AltGamma(means[i], shape)), used by GammaShapeSampler's
// per-transcript likelihood over condition means.
func AltGammaMeansF(means []float64, shape float64, xs []float64) float64 {
	var total float64
	for i, x := range xs {
		total += AltGammaF1(means[i], shape, x)
	}
	return total
}

// AltGammaDfDx is d/dx of the summed log-density.
func AltGammaDfDx(mean, shape float64, xs []float64) float64 {
	scale := mean / shape
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += (shape - 1.0) / x
	}
	return part - n/scale
}

// AltGammaDfDmean is d/dmean of the summed log-density.
func AltGammaDfDmean(mean, shape float64, xs []float64) float64 {
	var part float64
	for _, x := range xs {
		part += x
	}
	n := float64(len(xs))
	part *= shape / sq(mean)
	return part - n*shape/mean
}

// AltGammaDfDshape is d/dshape of the summed log-density, all observations
// sharing one mean.
func AltGammaDfDshape(mean, shape float64, xs []float64) float64 {
	scale := mean / shape
	n := float64(len(xs))
	var part float64
	for _, x := range xs {
		part += fastlog(x) - x/mean
	}
	return n*(-mathext.Digamma(shape)-fastlog(scale)+1) + part
}

// AltGammaDfDshapeMeans is d/dshape of the summed log-density when every
// observation has its own mean (means[i] paired with xs[i]).
func AltGammaDfDshapeMeans(means []float64, shape float64, xs []float64) float64 {
	var total float64
	for i, x := range xs {
		mean := means[i]
		scale := mean / shape
		total += -mathext.Digamma(shape) - fastlog(scale) + 1 + fastlog(x) - x/mean
	}
	return total
}
