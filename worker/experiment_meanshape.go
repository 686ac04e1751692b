package worker

import (
	"github.com/CraigKelly/tgibbs/cond"
	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/rng"
)

// ExperimentMeanShapeWorker draws emean[n] via GammaMean over cmean[:,n],
// per spec.md §4.D. Per spec.md §9's open-question resolution this worker
// kind is treated as not burn-in aware: it always draws normally.
type ExperimentMeanShapeWorker struct {
	Condition  *model.ConditionParams
	Experiment *model.ExperimentParams

	Mean0, Shape0 *float64

	RNGPool []*rng.Source

	TickQueue   *Queue[IdxRange]
	NotifyQueue *Queue[int]

	meanSampler *cond.GammaMean
}

// NewExperimentMeanShapeWorker wires a worker with the [1e-12, 1] bounds
// spec.md's component table assigns emean.
func NewExperimentMeanShapeWorker() *ExperimentMeanShapeWorker {
	return &ExperimentMeanShapeWorker{meanSampler: cond.NewGammaMean(1e-12, 1)}
}

// Run processes transcript ranges until it pops the shutdown sentinel.
func (w *ExperimentMeanShapeWorker) Run() {
	for {
		r := w.TickQueue.Pop()
		if r.IsSentinel() {
			return
		}

		for n := r.First; n < r.Last; n++ {
			src := w.RNGPool[n]
			xs := w.Condition.Column(n)

			w.Experiment.Mean[n] = w.meanSampler.Draw(src,
				w.Experiment.Mean[n], w.Experiment.Shape, xs,
				*w.Mean0, *w.Shape0)
		}

		w.NotifyQueue.Push(1)
	}
}
