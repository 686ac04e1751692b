package worker

import (
	"math"
	"sync/atomic"

	"github.com/CraigKelly/tgibbs/cond"
	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/rng"
)

// ConditionSpliceWorker draws, per spliced tgroup j and member k: eta, then
// condition splice means via NormalTMu, then condition splice sigma via
// GammaNormalSigma (forced to 1.0 during burn-in, floored by
// MinSpliceSigma after), per spec.md §4.D.
type ConditionSpliceWorker struct {
	Q       *model.Abundances
	Dataset *model.Dataset
	Splice  *model.ConditionSpliceParams

	ExperimentSplice *model.ExperimentSpliceParams
	ExperimentNu     *float64

	SpliceAlpha, SpliceBeta *float64
	MinSpliceSigma          *float64

	RNGPool []*rng.Source
	BurnIn  *atomic.Bool

	TickQueue   *Queue[IdxRange]
	NotifyQueue *Queue[int]

	etaSampler   *cond.ConditionSpliceEta
	muSampler    *cond.NormalTMu
	sigmaSampler *cond.GammaNormalSigma
}

// NewConditionSpliceWorker wires a worker with source-grounded NormalTMu
// bounds [-1, 2] for condition splice means.
func NewConditionSpliceWorker() *ConditionSpliceWorker {
	return &ConditionSpliceWorker{
		etaSampler:   cond.NewConditionSpliceEta(),
		muSampler:    cond.NewNormalTMu(-1, 2),
		sigmaSampler: cond.NewGammaNormalSigma(),
	}
}

// Run processes spliced-tgroup ranges until it pops the shutdown sentinel.
func (w *ConditionSpliceWorker) Run() {
	k := w.Q.K
	c := w.Splice.C

	for {
		r := w.TickQueue.Pop()
		if r.IsSentinel() {
			return
		}

		for j := r.First; j < r.Last; j++ {
			tgroup := w.Dataset.SplicedTgroups[j]
			tids := w.Dataset.TgroupTids[tgroup]
			memberCount := len(tids)
			src := w.RNGPool[j]

			dataj := make([][]float64, k)
			for i := 0; i < k; i++ {
				dataj[i] = make([]float64, memberCount)
				var sum float64
				for kk, tid := range tids {
					dataj[i][kk] = w.Q.Row(i)[tid]
					sum += dataj[i][kk]
				}
				for kk := range dataj[i] {
					dataj[i][kk] /= sum
				}
			}

			w.sampleEta(src, j, c, k, dataj)
			w.sampleMu(src, j, c, dataj)
			w.sampleSigma(src, j, c, k, dataj)
		}

		w.NotifyQueue.Push(1)
	}
}

func (w *ConditionSpliceWorker) sampleEta(src *rng.Source, j, c, k int, dataj [][]float64) {
	memberCount := len(dataj[0])

	for kk := 0; kk < memberCount; kk++ {
		unadjSigma := w.Splice.SigmaAt(j, kk) / math.Abs(w.Splice.EtaAt(j, kk))

		sampleMu := make([]float64, c)
		unadjMu := make([]float64, c)
		for ci, members := range w.Dataset.ConditionSamples {
			var sum float64
			for _, sampleIdx := range members {
				sum += dataj[sampleIdx][kk]
			}
			sampleMu[ci] = sum / float64(len(members))
			unadjMu[ci] = (w.Splice.MuAt(ci, j, kk) - sampleMu[ci]) / w.Splice.EtaAt(j, kk)
		}

		spliceCol := make([]float64, k)
		for i := 0; i < k; i++ {
			spliceCol[i] = dataj[i][kk]
		}

		newEta := w.etaSampler.Draw(src,
			w.Splice.EtaAt(j, kk), unadjMu, unadjSigma, spliceCol, sampleMu,
			w.Dataset.ConditionSamples,
			*w.ExperimentNu, w.ExperimentSplice.MuAt(j, kk), w.ExperimentSplice.Sigma,
			*w.SpliceAlpha, *w.SpliceBeta)

		w.Splice.SetSigmaAt(j, kk, unadjSigma*math.Abs(newEta))
		for ci := range sampleMu {
			w.Splice.SetMuAt(ci, j, kk, unadjMu[ci]*newEta+sampleMu[ci])
		}
		w.Splice.ResetEta(j, kk)
	}
}

func (w *ConditionSpliceWorker) sampleMu(src *rng.Source, j, c int, dataj [][]float64) {
	memberCount := len(dataj[0])

	for ci, members := range w.Dataset.ConditionSamples {
		for kk := 0; kk < memberCount; kk++ {
			data := make([]float64, len(members))
			for l, sampleIdx := range members {
				data[l] = dataj[sampleIdx][kk]
			}

			newMu := w.muSampler.Draw(src,
				w.Splice.MuAt(ci, j, kk), w.Splice.SigmaAt(j, kk), data,
				*w.ExperimentNu, w.ExperimentSplice.MuAt(j, kk), w.ExperimentSplice.Sigma)
			w.Splice.SetMuAt(ci, j, kk, newMu)
		}
	}
}

func (w *ConditionSpliceWorker) sampleSigma(src *rng.Source, j, c, k int, dataj [][]float64) {
	memberCount := len(dataj[0])

	for kk := 0; kk < memberCount; kk++ {
		data := make([]float64, k)
		for i := 0; i < k; i++ {
			data[i] = dataj[i][kk] - w.Splice.MuAt(w.Dataset.Condition[i], j, kk)
		}

		if w.BurnIn.Load() {
			w.Splice.SetSigmaAt(j, kk, 1.0)
			continue
		}

		newSigma := w.sigmaSampler.Draw(src, w.Splice.SigmaAt(j, kk), data, *w.SpliceAlpha, *w.SpliceBeta)
		if newSigma < *w.MinSpliceSigma {
			newSigma = *w.MinSpliceSigma
		}
		w.Splice.SetSigmaAt(j, kk, newSigma)
	}
}
