package model

// SpliceIndex precomputes the (j,k) -> flat-offset addressing used by every
// splice-parameter buffer, per spec.md §9's guidance to prefer a flat
// buffer with a precomputed offset table over
// std::vector<std::vector<std::vector<float>>> nesting. j ranges over
// spliced tgroups (0..J), k ranges over a spliced tgroup's members
// (0..|tids_j|).
type SpliceIndex struct {
	Offsets []int // len J+1; Offsets[j]..Offsets[j+1] is tgroup j's member range
	TotalK  int   // sum over j of |tids_j|
}

// NewSpliceIndex builds the offset table for the dataset's spliced tgroups.
func NewSpliceIndex(d *Dataset) *SpliceIndex {
	j := d.J()
	offsets := make([]int, j+1)
	for i, tid := range d.SplicedTgroups {
		offsets[i+1] = offsets[i] + len(d.TgroupTids[tid])
	}
	return &SpliceIndex{Offsets: offsets, TotalK: offsets[j]}
}

// MemberCount returns |tids_j| for spliced tgroup index j.
func (si *SpliceIndex) MemberCount(j int) int {
	return si.Offsets[j+1] - si.Offsets[j]
}

// Flat returns the flat index for (j, k) into a length-TotalK buffer.
func (si *SpliceIndex) Flat(j, k int) int {
	return si.Offsets[j] + k
}

// ConditionSpliceParams holds per-condition splice mean (per c,j,k), plus
// the shared-across-conditions sigma and eta (per j,k), per spec.md §3.
type ConditionSpliceParams struct {
	C     int
	Index *SpliceIndex
	Mu    []float64 // row-major C * TotalK
	Sigma []float64 // len TotalK
	Eta   []float64 // len TotalK, == 1.0 at every tick boundary
}

// NewConditionSpliceParams allocates condition splice params at spec.md
// §6's initial values (mu=0.5, sigma=0.1).
func NewConditionSpliceParams(c int, idx *SpliceIndex) *ConditionSpliceParams {
	mu := make([]float64, c*idx.TotalK)
	for i := range mu {
		mu[i] = 0.5
	}
	sigma := make([]float64, idx.TotalK)
	eta := make([]float64, idx.TotalK)
	for i := range sigma {
		sigma[i] = 0.1
		eta[i] = 1.0
	}
	return &ConditionSpliceParams{C: c, Index: idx, Mu: mu, Sigma: sigma, Eta: eta}
}

// MuAt returns csplice_mu[c,j,k].
func (p *ConditionSpliceParams) MuAt(c, j, k int) float64 {
	return p.Mu[c*p.Index.TotalK+p.Index.Flat(j, k)]
}

// SetMuAt sets csplice_mu[c,j,k].
func (p *ConditionSpliceParams) SetMuAt(c, j, k int, v float64) {
	p.Mu[c*p.Index.TotalK+p.Index.Flat(j, k)] = v
}

// SigmaAt returns csplice_sigma[j,k].
func (p *ConditionSpliceParams) SigmaAt(j, k int) float64 {
	return p.Sigma[p.Index.Flat(j, k)]
}

// SetSigmaAt sets csplice_sigma[j,k].
func (p *ConditionSpliceParams) SetSigmaAt(j, k int, v float64) {
	p.Sigma[p.Index.Flat(j, k)] = v
}

// EtaAt returns csplice_eta[j,k].
func (p *ConditionSpliceParams) EtaAt(j, k int) float64 {
	return p.Eta[p.Index.Flat(j, k)]
}

// SetEtaAt sets csplice_eta[j,k].
func (p *ConditionSpliceParams) SetEtaAt(j, k int, v float64) {
	p.Eta[p.Index.Flat(j, k)] = v
}

// ResetEta resets csplice_eta[j,k] to 1.0, the invariant that must hold at
// every tick boundary (spec.md §8).
func (p *ConditionSpliceParams) ResetEta(j, k int) {
	p.SetEtaAt(j, k, 1.0)
}

// ExperimentSpliceParams holds the experiment-level splice mean per (j,k)
// and a single shared sigma scalar (spec.md §3).
type ExperimentSpliceParams struct {
	Index *SpliceIndex
	Mu    []float64 // len TotalK
	Sigma float64
}

// NewExperimentSpliceParams allocates experiment splice params at spec.md
// §6's initial values (mu=0.5, sigma=0.5).
func NewExperimentSpliceParams(idx *SpliceIndex) *ExperimentSpliceParams {
	mu := make([]float64, idx.TotalK)
	for i := range mu {
		mu[i] = 0.5
	}
	return &ExperimentSpliceParams{Index: idx, Mu: mu, Sigma: 0.5}
}

// MuAt returns esplice_mu[j,k].
func (p *ExperimentSpliceParams) MuAt(j, k int) float64 {
	return p.Mu[p.Index.Flat(j, k)]
}

// SetMuAt sets esplice_mu[j,k].
func (p *ExperimentSpliceParams) SetMuAt(j, k int, v float64) {
	p.Mu[p.Index.Flat(j, k)] = v
}
