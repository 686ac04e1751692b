package worker

import (
	"github.com/CraigKelly/tgibbs/cond"
	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/rng"
)

// ExperimentSpliceWorker draws esplice_mu[j,k] from the per-condition
// values via StudentTMu, per spec.md §4.D. Per spec.md §9's open-question
// resolution this worker kind is treated as not burn-in aware.
type ExperimentSpliceWorker struct {
	Dataset          *model.Dataset
	ConditionSplice  *model.ConditionSpliceParams
	ExperimentSplice *model.ExperimentSpliceParams

	ExperimentNu              *float64
	ExperimentMu0, ExperimentSigma0 *float64

	RNGPool []*rng.Source

	TickQueue   *Queue[IdxRange]
	NotifyQueue *Queue[int]

	muSampler *cond.StudentTMu
}

// NewExperimentSpliceWorker wires a worker with source-grounded StudentTMu
// bounds [-1, 2] for experiment splice means.
func NewExperimentSpliceWorker() *ExperimentSpliceWorker {
	return &ExperimentSpliceWorker{muSampler: cond.NewStudentTMu(-1, 2)}
}

// Run processes spliced-tgroup ranges until it pops the shutdown sentinel.
func (w *ExperimentSpliceWorker) Run() {
	c := w.ConditionSplice.C

	for {
		r := w.TickQueue.Pop()
		if r.IsSentinel() {
			return
		}

		for j := r.First; j < r.Last; j++ {
			tgroup := w.Dataset.SplicedTgroups[j]
			memberCount := len(w.Dataset.TgroupTids[tgroup])
			src := w.RNGPool[j]

			for kk := 0; kk < memberCount; kk++ {
				data := make([]float64, c)
				for ci := 0; ci < c; ci++ {
					data[ci] = w.ConditionSplice.MuAt(ci, j, kk)
				}

				newMu := w.muSampler.Draw(src,
					w.ExperimentSplice.MuAt(j, kk), *w.ExperimentNu, w.ExperimentSplice.Sigma, data,
					*w.ExperimentMu0, *w.ExperimentSigma0)
				w.ExperimentSplice.SetMuAt(j, kk, newMu)
			}
		}

		w.NotifyQueue.Push(1)
	}
}
