package gibbs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/output"
	"github.com/CraigKelly/tgibbs/quant"
)

func testDataset(t *testing.T) *model.Dataset {
	t.Helper()
	// 4 samples, 2 conditions, 5 transcripts in 3 tgroups (one spliced).
	ds, err := model.NewDataset(
		[]int{0, 0, 1, 1},
		[][]int{{0}, {1, 2}, {3, 4}},
	)
	require.NoError(t, err)
	return ds
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NumThreads = 1
	cfg.NumOptRounds = 2
	cfg.Burnin = 2
	cfg.NumSamples = 3
	cfg.BlockSize = 2
	cfg.SampleScalingTruncation = 5
	return cfg
}

func TestCoordinatorRunProducesExpectedRows(t *testing.T) {
	ds := testDataset(t)
	idx := model.NewSpliceIndex(ds)
	cfg := testConfig()

	dir := filepath.Join(t.TempDir(), "run")
	out, err := output.NewDirWriter(dir)
	require.NoError(t, err)

	factory := &quant.FakeFactory{N: ds.N, SpliceLen: idx.TotalK, Seed: cfg.RngSeed}

	co, err := New(cfg, ds, factory, out)
	require.NoError(t, err)

	require.NoError(t, co.Run())

	rows, err := output.ReadRows(dir)
	require.NoError(t, err)
	require.Len(t, rows, cfg.NumSamples)

	for i, row := range rows {
		require.Equal(t, i, row.SampleNum)
		require.Len(t, row.TranscriptQuantification, ds.K)
		for _, q := range row.TranscriptQuantification {
			require.Len(t, q, ds.N)
		}
		require.Len(t, row.ExperimentSpliceMu, ds.J())
	}

	meta, err := output.ReadMetadata(dir)
	require.NoError(t, err)
	require.Len(t, meta.TranscriptID, ds.N)
}

func TestCoordinatorAbundanceRowsStayNormalized(t *testing.T) {
	ds := testDataset(t)
	idx := model.NewSpliceIndex(ds)
	cfg := testConfig()
	cfg.Burnin = 0
	cfg.NumSamples = 1

	factory := &quant.FakeFactory{N: ds.N, SpliceLen: idx.TotalK, Seed: cfg.RngSeed}

	co, err := New(cfg, ds, factory, nil)
	require.NoError(t, err)

	require.NoError(t, co.Run())

	for k := 0; k < ds.K; k++ {
		var sum float64
		for _, v := range co.Abundances.Row(k) {
			sum += v
		}
		require.Greater(t, sum, 0.0)
	}
	require.Equal(t, 1.0, co.Abundances.Scale[0])
}
