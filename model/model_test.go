package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDatasetDerivesSplicedTgroups(t *testing.T) {
	require := require.New(t)

	// 2 conditions, 4 samples; tgroup 0 is a singleton, tgroup 1 is spliced (2 members).
	d, err := NewDataset(
		[]int{0, 0, 1, 1},
		[][]int{{0}, {1, 2}},
	)
	require.NoError(err)

	require.Equal(4, d.K)
	require.Equal(2, d.C)
	require.Equal(3, d.N)
	require.Equal(2, d.T)
	require.Equal([]int{1}, d.SplicedTgroups)
	require.True(d.IsSpliced(1))
	require.False(d.IsSpliced(0))
	require.Equal(1, d.J())
	require.ElementsMatch([]int{0, 1}, d.ConditionSamples[0])
	require.ElementsMatch([]int{2, 3}, d.ConditionSamples[1])
}

func TestNewDatasetRejectsTranscriptInTwoTgroups(t *testing.T) {
	require := require.New(t)

	_, err := NewDataset(
		[]int{0},
		[][]int{{0, 1}, {1}},
	)
	require.Error(err)
}

func TestNewDatasetRejectsOutOfRangeCondition(t *testing.T) {
	require := require.New(t)

	_, err := NewDataset(
		[]int{0, 5},
		[][]int{{0}, {1}},
	)
	require.Error(err)
}

func TestAbundancesRescaleConstantRows(t *testing.T) {
	require := require.New(t)

	const n = 100
	a := NewAbundances(3, n)
	for k, v := range []float64{1, 2, 4} {
		row := a.Row(k)
		for i := range row {
			row[i] = v
		}
	}

	a.Rescale(n, 0.9)

	require.Equal(1.0, a.Scale[0])
	require.InDelta(0.5, a.Scale[1], 1e-9)
	require.InDelta(0.25, a.Scale[2], 1e-9)

	for k := 0; k < 3; k++ {
		row := a.Row(k)
		for _, v := range row {
			require.InDelta(1.0, v, 1e-6)
		}
	}
}

func TestSpliceIndexOffsets(t *testing.T) {
	require := require.New(t)

	d, err := NewDataset(
		[]int{0},
		[][]int{{0}, {1, 2, 3}, {4, 5}},
	)
	require.NoError(err)

	idx := NewSpliceIndex(d)
	require.Equal(2, len(d.SplicedTgroups))
	require.Equal(5, idx.TotalK) // 3 + 2
	require.Equal(3, idx.MemberCount(0))
	require.Equal(2, idx.MemberCount(1))
	require.Equal(0, idx.Flat(0, 0))
	require.Equal(2, idx.Flat(0, 2))
	require.Equal(3, idx.Flat(1, 0))
}

func TestConditionSpliceParamsEtaResetInvariant(t *testing.T) {
	require := require.New(t)

	d, err := NewDataset([]int{0, 1}, [][]int{{0, 1}})
	require.NoError(err)
	idx := NewSpliceIndex(d)

	p := NewConditionSpliceParams(d.C, idx)
	p.SetEtaAt(0, 0, 2.5)
	require.Equal(2.5, p.EtaAt(0, 0))
	p.ResetEta(0, 0)
	require.Equal(1.0, p.EtaAt(0, 0))
}
