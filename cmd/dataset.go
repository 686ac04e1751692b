package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/CraigKelly/tgibbs/model"
)

// datasetFile is the on-disk description of a run's structure: which
// condition each sample belongs to, and which transcripts belong to each
// tgroup. Transcript/gene annotation and fragment-model ingestion are out
// of scope (spec.md §1); this file carries only the structural
// information the coordinator needs to size its arrays.
type datasetFile struct {
	Condition  []int   `json:"condition"`
	TgroupTids [][]int `json:"tgroup_tids"`
}

// loadDataset reads and validates a datasetFile from path.
func loadDataset(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset file %s", path)
	}
	defer f.Close()

	var df datasetFile
	if err := json.NewDecoder(f).Decode(&df); err != nil {
		return nil, errors.Wrapf(err, "parsing dataset file %s", path)
	}

	ds, err := model.NewDataset(df.Condition, df.TgroupTids)
	if err != nil {
		return nil, errors.Wrapf(err, "building dataset from %s", path)
	}
	return ds, nil
}
