// Package output implements spec.md §4.F / §6's output serializer: it
// flattens per-sample, per-iteration state into the external store. The
// real store is an HDF5-like layout and is explicitly out of scope
// (spec.md §1); this package defines the Writer interface the coordinator
// depends on and a concrete DirWriter that lays out the same documented
// groups as flat files, standing in for the HDF5 dataset layout without
// reimplementing it.
package output

// Metadata is the per-run, per-transcript/tgroup metadata spec.md §6 lists
// as the fixed (non-iteration-indexed) output groups.
type Metadata struct {
	TranscriptID []string
	GeneID       []string
	GeneName     []string
	Tgroup       []uint32
}

// Row is one posterior sample's worth of output, spec.md §6's per-row
// groups. Index 0 is always the optimization-phase maximum-posterior
// sample; indices 1..num_samples-1 are ordinary posterior draws.
type Row struct {
	SampleNum int

	TranscriptQuantification [][]float32 // K x N
	SampleScaling            []float32   // K

	ExperimentMean         []float32   // N
	ExperimentSpliceMu     [][]float32 // J, variable length per j
	ExperimentSpliceSigma  []float32   // J

	ConditionMean         [][]float32   // C x N
	ConditionShape        []float32     // N
	ConditionSpliceMu     [][][]float32 // C x J, variable length per j
	ConditionSpliceSigma  [][]float32   // J, variable length per j
}

// Writer is the external-store interface the Gibbs coordinator depends
// on. A real HDF5-backed implementation is out of scope per spec.md §1;
// DirWriter is the in-scope stand-in used by the CLI and tests.
type Writer interface {
	WriteMetadata(Metadata) error
	WriteRow(Row) error
	Close() error
}
