package worker

import (
	"sync/atomic"

	"github.com/CraigKelly/tgibbs/cond"
	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/rng"
)

// ConditionMeanShapeWorker draws cmean[c,n] for each condition c via
// GammaMean with prior (emean[n], eshape), then cshape[n] via GammaShape --
// except during burn-in when cshape[n] is forced to 1.0, per spec.md §4.D.
type ConditionMeanShapeWorker struct {
	Q          *model.Abundances
	Condition  *model.ConditionParams
	Experiment *model.ExperimentParams
	Dataset    *model.Dataset

	ShapeAlpha, ShapeBeta *float64

	RNGPool []*rng.Source
	BurnIn  *atomic.Bool

	TickQueue   *Queue[IdxRange]
	NotifyQueue *Queue[int]

	meanSampler  *cond.GammaMean
	shapeSampler *cond.GammaShape
}

// NewConditionMeanShapeWorker wires a worker with the bounds spec.md's
// component table assigns cmean and cshape.
func NewConditionMeanShapeWorker() *ConditionMeanShapeWorker {
	return &ConditionMeanShapeWorker{
		meanSampler:  cond.NewGammaMean(1e-12, 1),
		shapeSampler: cond.NewGammaShape(0.1, 5),
	}
}

// Run processes transcript ranges until it pops the shutdown sentinel.
func (w *ConditionMeanShapeWorker) Run() {
	k := w.Q.K
	xs := make([]float64, k)
	xsMu := make([]float64, k)

	for {
		r := w.TickQueue.Pop()
		if r.IsSentinel() {
			return
		}

		for n := r.First; n < r.Last; n++ {
			src := w.RNGPool[n]

			for c, members := range w.Dataset.ConditionSamples {
				condXs := gatherColumn(w.Q, n, members)
				newMean := w.meanSampler.Draw(src,
					w.Condition.MeanAt(c, n), w.Condition.Shape[n], condXs,
					w.Experiment.Mean[n], w.Experiment.Shape)
				w.Condition.SetMeanAt(c, n, newMean)
			}

			for i := 0; i < k; i++ {
				xsMu[i] = w.Condition.MeanAt(w.Dataset.Condition[i], n)
				xs[i] = w.Q.Row(i)[n]
			}

			if w.BurnIn.Load() {
				w.Condition.Shape[n] = 1.0
			} else {
				w.Condition.Shape[n] = w.shapeSampler.Draw(src,
					xsMu, w.Condition.Shape[n], xs, *w.ShapeAlpha, *w.ShapeBeta)
			}
		}

		w.NotifyQueue.Push(1)
	}
}

func gatherColumn(q *model.Abundances, n int, samples []int) []float64 {
	xs := make([]float64, len(samples))
	for i, k := range samples {
		xs[i] = q.Row(k)[n]
	}
	return xs
}
