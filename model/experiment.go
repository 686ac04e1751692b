package model

// ExperimentParams holds the experiment-wide abundance mean vector and the
// scalar shape parameter (spec.md §3).
type ExperimentParams struct {
	Mean  []float64 // len N
	Shape float64
}

// NewExperimentParams allocates experiment params per spec.md §6's initial
// values (mean = zeroEps, shape = 2).
func NewExperimentParams(n int, zeroEps float64) *ExperimentParams {
	mean := make([]float64, n)
	for i := range mean {
		mean[i] = zeroEps
	}
	return &ExperimentParams{Mean: mean, Shape: 2.0}
}
