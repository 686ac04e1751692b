package worker

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/quant"
)

// ErrSink captures the first error reported by any quantification worker.
// Quantifier errors are the one failure mode in this module that is not an
// invariant violation (spec.md §7: "External quantifier errors —
// propagated upward unchanged; coordinator aborts the run"), so they need
// a path out of a worker goroutine instead of a panic.
type ErrSink struct {
	mu  sync.Mutex
	err error
}

// Set records err if it is the first error seen.
func (s *ErrSink) Set(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error recorded, or nil.
func (s *ErrSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// QuantWorker pops a sample index from TickQueue, drives that sample's
// quantification handle in optimize or sample mode, and copies its
// reported abundance vector into Q's row for that sample. Per spec.md
// §4.D: "pop a sample index k; call the external quantifier in either
// optimize() or sample() mode; copy its N-vector output into row k of Q;
// push 1 to notify."
type QuantWorker struct {
	Handles     []quant.Handle
	Q           *model.Abundances
	TickQueue   *Queue[int]
	NotifyQueue *Queue[int]
	Optimize    *atomic.Bool
	Errs        *ErrSink
}

// Run processes sample indices until it pops the -1 sentinel.
func (w *QuantWorker) Run() {
	for {
		k := w.TickQueue.Pop()
		if k == -1 {
			return
		}

		h := w.Handles[k]
		var err error
		if w.Optimize.Load() {
			err = h.Optimize()
		} else {
			err = h.Sample()
		}
		if err != nil {
			w.Errs.Set(errors.Wrapf(err, "quantification tick failed for sample %d", k))
			w.NotifyQueue.Push(1)
			continue
		}

		copy(w.Q.Row(k), h.State())
		w.NotifyQueue.Push(1)
	}
}
