package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	content := `{"condition": [0, 0, 1], "tgroup_tids": [[0], [1, 2]]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataset(t *testing.T) {
	ds, err := loadDataset(writeTestDataset(t))
	require.NoError(t, err)
	require.Equal(t, 3, ds.K)
	require.Equal(t, 2, ds.C)
	require.Equal(t, 3, ds.N)
	require.Equal(t, 1, ds.J())
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := loadDataset(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestWriteDotIncludesTgroupAndConditionClusters(t *testing.T) {
	ds, err := loadDataset(writeTestDataset(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeDot(&buf, ds))

	out := buf.String()
	require.Contains(t, out, "cluster_tgroup_1")
	require.Contains(t, out, "transcript_1 -- transcript_2")
	require.Contains(t, out, "cluster_condition_0")
	require.Contains(t, out, "sample_2")
}
