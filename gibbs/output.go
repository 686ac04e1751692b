package gibbs

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/CraigKelly/tgibbs/output"
)

// writeMetadata writes the fixed per-transcript/tgroup identifiers, spec.md
// §6's non-iteration-indexed output groups. Transcript and gene annotation
// ingest is out of scope (spec.md §1), so identifiers are synthesized from
// dataset indices rather than read from a GTF/FASTA.
func (co *Coordinator) writeMetadata() error {
	if co.Output == nil {
		return nil
	}

	meta := output.Metadata{
		TranscriptID: make([]string, co.Dataset.N),
		GeneID:       make([]string, co.Dataset.N),
		GeneName:     make([]string, co.Dataset.N),
		Tgroup:       make([]uint32, co.Dataset.N),
	}
	for n := 0; n < co.Dataset.N; n++ {
		tgroup := co.Dataset.TranscriptTgroup[n]
		meta.TranscriptID[n] = fmt.Sprintf("transcript_%d", n)
		meta.GeneID[n] = fmt.Sprintf("gene_%d", tgroup)
		meta.GeneName[n] = fmt.Sprintf("gene_%d", tgroup)
		meta.Tgroup[n] = uint32(tgroup)
	}

	if err := co.Output.WriteMetadata(meta); err != nil {
		return errors.Wrap(err, "writing output metadata")
	}
	return nil
}

// writeRow flattens the coordinator's current state into one output.Row
// and writes it, spec.md §6's per-sample output groups.
func (co *Coordinator) writeRow(sampleNum int) error {
	if co.Output == nil {
		return nil
	}

	k, n, c, j := co.Dataset.K, co.Dataset.N, co.Dataset.C, co.Dataset.J()

	row := output.Row{
		SampleNum:                sampleNum,
		TranscriptQuantification: make([][]float32, k),
		SampleScaling:            toFloat32(co.Abundances.Scale),
		ExperimentMean:           toFloat32(co.Experiment.Mean),
		ExperimentSpliceMu:       make([][]float32, j),
		ExperimentSpliceSigma:    make([]float32, j),
		ConditionMean:            make([][]float32, c),
		ConditionShape:           toFloat32(co.Condition.Shape),
		ConditionSpliceMu:        make([][][]float32, c),
		ConditionSpliceSigma:     make([][]float32, j),
	}

	for kk := 0; kk < k; kk++ {
		row.TranscriptQuantification[kk] = toFloat32(co.Abundances.Row(kk))
	}

	for cc := 0; cc < c; cc++ {
		row.ConditionMean[cc] = toFloat32(co.Condition.Mean[cc*n : (cc+1)*n])
		row.ConditionSpliceMu[cc] = make([][]float32, j)
	}

	for jj := 0; jj < j; jj++ {
		members := co.SpliceIndex.MemberCount(jj)
		row.ExperimentSpliceMu[jj] = make([]float32, members)
		row.ConditionSpliceSigma[jj] = make([]float32, members)
		// esplice_sigma is a single scalar; spec.md §6's documented layout
		// still shapes it [num_samples, J], so the same value is repeated
		// across j.
		row.ExperimentSpliceSigma[jj] = float32(co.ExperimentSplice.Sigma)
		for kk := 0; kk < members; kk++ {
			row.ExperimentSpliceMu[jj][kk] = float32(co.ExperimentSplice.MuAt(jj, kk))
			row.ConditionSpliceSigma[jj][kk] = float32(co.ConditionSplice.SigmaAt(jj, kk))
		}
		for cc := 0; cc < c; cc++ {
			row.ConditionSpliceMu[cc][jj] = make([]float32, members)
			for kk := 0; kk < members; kk++ {
				row.ConditionSpliceMu[cc][jj][kk] = float32(co.ConditionSplice.MuAt(cc, jj, kk))
			}
		}
	}

	if err := co.Output.WriteRow(row); err != nil {
		return errors.Wrapf(err, "writing output row %d", sampleNum)
	}
	return nil
}

func toFloat32(xs []float64) []float32 {
	out := make([]float32, len(xs))
	for i, v := range xs {
		out[i] = float32(v)
	}
	return out
}
