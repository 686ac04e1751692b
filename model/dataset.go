// Package model holds the RNA-seq sample/transcript/tgroup data model the
// Gibbs coordinator operates over (spec.md §3): sample and transcript
// counts, condition and tgroup membership tables, the per-sample abundance
// matrix, and every hyperparameter array the coordinator owns.
package model

import "github.com/pkg/errors"

// Dataset is the immutable structure of a run: how many samples, transcripts,
// conditions and tgroups there are, and how they relate to each other.
type Dataset struct {
	K int // sample count
	C int // condition count
	N int // transcript count
	T int // tgroup count

	// Condition maps sample index -> condition id, len K.
	Condition []int

	// ConditionSamples maps condition id -> member sample indices.
	ConditionSamples [][]int

	// TgroupTids maps tgroup id -> ordered member transcript indices.
	TgroupTids [][]int

	// TranscriptTgroup maps transcript index -> owning tgroup id, len N.
	TranscriptTgroup []int

	// SplicedTgroups is the ordered list of tgroup ids with |tids| > 1
	// (spec.md's spliced_tgroup_indexes), size J.
	SplicedTgroups []int
}

// NewDataset builds a Dataset from condition assignments and tgroup
// membership, deriving ConditionSamples, TranscriptTgroup and
// SplicedTgroups, then validates every invariant in spec.md §3.
func NewDataset(condition []int, tgroupTids [][]int) (*Dataset, error) {
	k := len(condition)
	t := len(tgroupTids)

	distinct := map[int]bool{}
	for _, cid := range condition {
		distinct[cid] = true
	}
	c := len(distinct)

	n := 0
	transcriptTgroup := map[int]int{}
	for tid, members := range tgroupTids {
		for _, idx := range members {
			if idx+1 > n {
				n = idx + 1
			}
			transcriptTgroup[idx] = tid
		}
	}

	d := &Dataset{
		K:                k,
		C:                c,
		N:                n,
		T:                t,
		Condition:        condition,
		TgroupTids:       tgroupTids,
		TranscriptTgroup: make([]int, n),
	}

	for idx := 0; idx < n; idx++ {
		tid, ok := transcriptTgroup[idx]
		if !ok {
			return nil, errors.Errorf("transcript %d is not a member of any tgroup", idx)
		}
		d.TranscriptTgroup[idx] = tid
	}

	d.ConditionSamples = make([][]int, c)
	for k, cid := range condition {
		if cid < 0 || cid >= c {
			return nil, errors.Errorf("sample %d has condition %d out of range [0,%d)", k, cid, c)
		}
		d.ConditionSamples[cid] = append(d.ConditionSamples[cid], k)
	}

	for tid, members := range tgroupTids {
		if len(members) > 1 {
			d.SplicedTgroups = append(d.SplicedTgroups, tid)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks the structural invariants spec.md §3 requires.
func (d *Dataset) Validate() error {
	if d.K < 1 {
		return errors.Errorf("dataset has no samples")
	}
	if d.N < 1 {
		return errors.Errorf("dataset has no transcripts")
	}

	for k, cid := range d.Condition {
		if cid < 0 || cid >= d.C {
			return errors.Errorf("sample %d has condition %d out of range [0,%d)", k, cid, d.C)
		}
	}

	seen := make([]bool, d.N)
	for tid, members := range d.TgroupTids {
		for _, idx := range members {
			if idx < 0 || idx >= d.N {
				return errors.Errorf("tgroup %d references transcript %d out of range [0,%d)", tid, idx, d.N)
			}
			if seen[idx] {
				return errors.Errorf("transcript %d belongs to more than one tgroup", idx)
			}
			seen[idx] = true
		}
	}
	for idx, ok := range seen {
		if !ok {
			return errors.Errorf("transcript %d belongs to no tgroup", idx)
		}
	}

	return nil
}

// IsSpliced reports whether tgroup tid has more than one member.
func (d *Dataset) IsSpliced(tid int) bool {
	return len(d.TgroupTids[tid]) > 1
}

// J returns the number of spliced tgroups.
func (d *Dataset) J() int {
	return len(d.SplicedTgroups)
}
