package model

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Abundances holds the K x N transcript abundance matrix Q and the K
// per-sample scale factors, stored as a flat row-major buffer rather than
// the teacher's nested-slice style, matching spec.md §9's preference for a
// flat buffer with a precomputed offset table over pointer-heavy
// neighborhood arrays.
type Abundances struct {
	K, N  int
	Q     []float64 // row-major, len K*N
	Scale []float64 // len K, Scale[0] == 1.0
}

// NewAbundances allocates a zeroed K x N matrix with unit scales.
func NewAbundances(k, n int) *Abundances {
	return &Abundances{
		K:     k,
		N:     n,
		Q:     make([]float64, k*n),
		Scale: onesVector(k),
	}
}

func onesVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0
	}
	return v
}

// Row returns the slice of Q belonging to sample k (no copy).
func (a *Abundances) Row(k int) []float64 {
	return a.Q[k*a.N : (k+1)*a.N]
}

// Rescale implements spec.md §4.E's scaling normalization: for each
// sample row, undo the current scale, compute a robust quantile-based scale
// factor, renormalize so Scale[0] == 1, then reapply.
//
// truncation is sample_scaling_truncation (L), quantile is
// sample_scaling_quantile (q).
func (a *Abundances) Rescale(truncation int, quantile float64) {
	raw := make([]float64, a.K)
	sorted := make([]float64, a.N)

	for k := 0; k < a.K; k++ {
		row := a.Row(k)
		for i, v := range row {
			sorted[i] = v / a.Scale[k]
		}
		sort.Float64s(sorted)

		idx := scalingIndex(quantile, a.N, truncation)
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		if idx < 0 {
			idx = 0
		}
		raw[k] = sorted[idx]
	}

	base := raw[0]
	newScale := make([]float64, a.K)
	for k := range newScale {
		if raw[k] == 0 {
			newScale[k] = 1.0
			continue
		}
		newScale[k] = base / raw[k]
	}

	for k := 0; k < a.K; k++ {
		row := a.Row(k)
		floats.Scale(newScale[k]/a.Scale[k], row)
		a.Scale[k] = newScale[k]
	}
	a.Scale[0] = 1.0
}

// scalingIndex computes the sorted-row index spec.md §4.E's scaling
// normalization reads the per-sample scale from: the value at
// N - effectiveSize + ceil(q * effectiveSize), effectiveSize = min(N, L).
// This restricts the quantile to the top effectiveSize values of the
// ascending-sorted row (the L highest-abundance transcripts) rather than
// taking a quantile of the full row, matching analyze.cpp:2342's
// `N - effective_size + q*effective_size` index.
func scalingIndex(q float64, n, truncation int) int {
	effectiveSize := truncation
	if effectiveSize > n {
		effectiveSize = n
	}
	return n - effectiveSize + ceilInt(q*float64(effectiveSize))
}

func ceilInt(v float64) int {
	iv := int(v)
	if float64(iv) < v {
		iv++
	}
	return iv
}
