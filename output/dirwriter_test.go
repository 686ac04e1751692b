package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirWriterRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")

	w, err := NewDirWriter(dir)
	require.NoError(t, err)

	meta := Metadata{
		TranscriptID: []string{"transcript_0", "transcript_1"},
		GeneID:       []string{"gene_0", "gene_0"},
		GeneName:     []string{"gene_0", "gene_0"},
		Tgroup:       []uint32{0, 0},
	}
	require.NoError(t, w.WriteMetadata(meta))
	require.Error(t, w.WriteMetadata(meta), "metadata may only be written once")

	row0 := Row{
		SampleNum:                0,
		TranscriptQuantification: [][]float32{{0.4, 0.6}},
		SampleScaling:            []float32{1.0},
		ExperimentMean:           []float32{0.5, 0.5},
		ConditionMean:            [][]float32{{0.5, 0.5}},
		ConditionShape:           []float32{1.0, 1.0},
	}
	row1 := row0
	row1.SampleNum = 1

	require.NoError(t, w.WriteRow(row0))
	require.NoError(t, w.WriteRow(row1))
	require.NoError(t, w.Close())

	gotMeta, err := ReadMetadata(dir)
	require.NoError(t, err)
	require.Equal(t, meta, gotMeta)

	gotRows, err := ReadRows(dir)
	require.NoError(t, err)
	require.Len(t, gotRows, 2)
	require.Equal(t, 0, gotRows[0].SampleNum)
	require.Equal(t, 1, gotRows[1].SampleNum)
	require.Equal(t, []float32{0.4, 0.6}, gotRows[0].TranscriptQuantification[0])
}
