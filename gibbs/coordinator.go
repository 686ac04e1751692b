// Package gibbs implements spec.md §4.E, the coordinator that drives the
// optimize/burn-in/sample state machine and fans per-tick work out to the
// worker package's goroutine pools.
package gibbs

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/CraigKelly/tgibbs/buffer"
	"github.com/CraigKelly/tgibbs/cond"
	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/output"
	"github.com/CraigKelly/tgibbs/quant"
	"github.com/CraigKelly/tgibbs/rng"
	"github.com/CraigKelly/tgibbs/worker"
)

// Phase names a Coordinator reports through CurrentPhase, for progress
// monitoring.
const (
	PhaseOptimize = "optimize"
	PhaseBurnin   = "burnin"
	PhaseSampling = "sampling"
	PhaseDone     = "done"
)

// Coordinator owns every model array, the deterministic RNG pool, the
// worker goroutine pools, and the external quantifier handles, and drives
// them through one run's optimize/burn-in/sample phases.
type Coordinator struct {
	Cfg     Config
	Dataset *model.Dataset

	SpliceIndex      *model.SpliceIndex
	Abundances       *model.Abundances
	Condition        *model.ConditionParams
	Experiment       *model.ExperimentParams
	ConditionSplice  *model.ConditionSpliceParams
	ExperimentSplice *model.ExperimentSpliceParams
	Scalars          *model.Scalars

	Pool    *rng.Pool
	Factory quant.Factory
	Handles []quant.Handle
	Output  output.Writer

	burnIn   *atomic.Bool
	optimize *atomic.Bool
	errs     *worker.ErrSink

	quantTick   *worker.Queue[int]
	quantNotify *worker.Queue[int]

	condMeanShapeTick   *worker.Queue[worker.IdxRange]
	condMeanShapeNotify *worker.Queue[int]
	expMeanShapeTick    *worker.Queue[worker.IdxRange]
	expMeanShapeNotify  *worker.Queue[int]
	condSpliceTick      *worker.Queue[worker.IdxRange]
	condSpliceNotify    *worker.Queue[int]
	expSpliceTick       *worker.Queue[worker.IdxRange]
	expSpliceNotify     *worker.Queue[int]

	cshapeBetaSampler   *cond.GammaBeta
	cspliceBetaSampler  *cond.GammaBeta
	espliceSigmaSampler *cond.GammaNormalSigma

	wg sync.WaitGroup

	// tickMillis is a rolling history of tick durations, adapted from the
	// teacher's CircularInt ring buffer; a progress monitor uses
	// TickTrend to show whether ticks are speeding up or slowing down.
	tickMillis  *buffer.CircularInt
	currTick    atomic.Int64
	currPhase   atomic.Value // string
}

// New allocates a Coordinator's model arrays and worker plumbing for a
// dataset, per spec.md §4.E step 1 and §6's initial-value table, creates
// and starts one quantification handle per sample, then spawns the worker
// goroutine pools. Call Run to drive the full optimize/burn-in/sample
// state machine.
func New(cfg Config, ds *model.Dataset, factory quant.Factory, out output.Writer) (*Coordinator, error) {
	if err := ds.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dataset")
	}

	pool, err := rng.NewPool(cfg.RngSeed, ds.N, ds.J())
	if err != nil {
		return nil, errors.Wrap(err, "building rng pool")
	}

	idx := model.NewSpliceIndex(ds)

	co := &Coordinator{
		Cfg:              cfg,
		Dataset:          ds,
		SpliceIndex:      idx,
		Abundances:       model.NewAbundances(ds.K, ds.N),
		Condition:        model.NewConditionParams(ds.C, ds.N, cfg.ZeroEps),
		Experiment:       model.NewExperimentParams(ds.N, cfg.ZeroEps),
		ConditionSplice:  model.NewConditionSpliceParams(ds.C, idx),
		ExperimentSplice: model.NewExperimentSpliceParams(idx),
		Scalars:          model.NewScalars(),
		Pool:             pool,
		Factory:          factory,
		Output:           out,

		burnIn:   new(atomic.Bool),
		optimize: new(atomic.Bool),
		errs:     &worker.ErrSink{},

		cshapeBetaSampler:   cond.NewGammaBeta(),
		cspliceBetaSampler:  cond.NewGammaBeta(),
		espliceSigmaSampler: cond.NewGammaNormalSigma(),

		tickMillis: buffer.NewCircularInt(20),
	}
	co.burnIn.Store(true)
	co.currPhase.Store(PhaseOptimize)

	co.Scalars.ConditionShapeAlpha = cfg.ConditionShapeAlpha
	co.Scalars.ConditionShapeBetaA = cfg.ConditionShapeBetaA
	co.Scalars.ConditionShapeBetaB = cfg.ConditionShapeBetaB
	co.Scalars.ConditionSpliceAlpha = cfg.ConditionSpliceAlpha
	co.Scalars.ConditionSpliceBetaA = cfg.ConditionSpliceBetaA
	co.Scalars.ConditionSpliceBetaB = cfg.ConditionSpliceBetaB
	co.Scalars.ExperimentShapeAlpha = cfg.ExperimentShapeAlpha
	co.Scalars.ExperimentShapeBeta = cfg.ExperimentShapeBeta
	co.Scalars.ExperimentSpliceSigmaAlpha = cfg.ExperimentSpliceSigmaAlpha
	co.Scalars.ExperimentSpliceSigmaBeta = cfg.ExperimentSpliceSigmaBeta
	co.Scalars.ExperimentMean0 = cfg.ExperimentMean0
	co.Scalars.ExperimentShape0 = cfg.ExperimentShape0
	co.Scalars.ExperimentSpliceMu0 = cfg.ExperimentSpliceMu0
	co.Scalars.ExperimentSpliceSigma0 = cfg.ExperimentSpliceSigma0
	co.Scalars.ExperimentSpliceNu = cfg.ExperimentSpliceNu
	co.Experiment.Shape = cfg.ExperimentShape

	co.Handles = make([]quant.Handle, ds.K)
	for k := 0; k < ds.K; k++ {
		h, err := factory.NewHandle(k, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "creating quant handle for sample %d", k)
		}
		if err := h.Start(); err != nil {
			return nil, errors.Wrapf(err, "starting quant handle for sample %d", k)
		}
		co.Handles[k] = h
	}

	// Every range of a fan-out is pushed before any of its notifies is
	// popped, so each range and notify queue holds a full tick's ranges
	// plus one shutdown sentinel per worker.
	backlog := len(chunkRanges(ds.N, cfg.BlockSize)) + len(chunkRanges(ds.J(), cfg.BlockSize)) + cfg.NumThreads
	co.quantTick = worker.NewQueue[int](ds.K + cfg.NumThreads)
	co.quantNotify = worker.NewQueue[int](ds.K + cfg.NumThreads)
	co.condMeanShapeTick = worker.NewQueue[worker.IdxRange](backlog)
	co.condMeanShapeNotify = worker.NewQueue[int](backlog)
	co.expMeanShapeTick = worker.NewQueue[worker.IdxRange](backlog)
	co.expMeanShapeNotify = worker.NewQueue[int](backlog)
	co.condSpliceTick = worker.NewQueue[worker.IdxRange](backlog)
	co.condSpliceNotify = worker.NewQueue[int](backlog)
	co.expSpliceTick = worker.NewQueue[worker.IdxRange](backlog)
	co.expSpliceNotify = worker.NewQueue[int](backlog)

	co.spawnWorkers()

	return co, nil
}

func (co *Coordinator) spawnWorkers() {
	n := co.Cfg.NumThreads

	for i := 0; i < n; i++ {
		qw := &worker.QuantWorker{
			Handles:     co.Handles,
			Q:           co.Abundances,
			TickQueue:   co.quantTick,
			NotifyQueue: co.quantNotify,
			Optimize:    co.optimize,
			Errs:        co.errs,
		}
		co.wg.Add(1)
		go func() { defer co.wg.Done(); qw.Run() }()

		cmw := worker.NewConditionMeanShapeWorker()
		cmw.Q = co.Abundances
		cmw.Condition = co.Condition
		cmw.Experiment = co.Experiment
		cmw.Dataset = co.Dataset
		cmw.ShapeAlpha = &co.Scalars.ConditionShapeAlpha
		cmw.ShapeBeta = &co.Scalars.CshapeBeta
		cmw.RNGPool = co.Pool.Transcripts
		cmw.BurnIn = co.burnIn
		cmw.TickQueue = co.condMeanShapeTick
		cmw.NotifyQueue = co.condMeanShapeNotify
		co.wg.Add(1)
		go func() { defer co.wg.Done(); cmw.Run() }()

		emw := worker.NewExperimentMeanShapeWorker()
		emw.Condition = co.Condition
		emw.Experiment = co.Experiment
		emw.Mean0 = &co.Scalars.ExperimentMean0
		emw.Shape0 = &co.Scalars.ExperimentShape0
		emw.RNGPool = co.Pool.Transcripts
		emw.TickQueue = co.expMeanShapeTick
		emw.NotifyQueue = co.expMeanShapeNotify
		co.wg.Add(1)
		go func() { defer co.wg.Done(); emw.Run() }()

		csw := worker.NewConditionSpliceWorker()
		csw.Q = co.Abundances
		csw.Dataset = co.Dataset
		csw.Splice = co.ConditionSplice
		csw.ExperimentSplice = co.ExperimentSplice
		csw.ExperimentNu = &co.Scalars.ExperimentSpliceNu
		csw.SpliceAlpha = &co.Scalars.ConditionSpliceAlpha
		csw.SpliceBeta = &co.Scalars.CspliceBeta
		csw.MinSpliceSigma = &co.Cfg.AnalyzeMinSpliceSigma
		csw.RNGPool = co.Pool.Tgroups
		csw.BurnIn = co.burnIn
		csw.TickQueue = co.condSpliceTick
		csw.NotifyQueue = co.condSpliceNotify
		co.wg.Add(1)
		go func() { defer co.wg.Done(); csw.Run() }()

		esw := worker.NewExperimentSpliceWorker()
		esw.Dataset = co.Dataset
		esw.ConditionSplice = co.ConditionSplice
		esw.ExperimentSplice = co.ExperimentSplice
		esw.ExperimentNu = &co.Scalars.ExperimentSpliceNu
		esw.ExperimentMu0 = &co.Scalars.ExperimentSpliceMu0
		esw.ExperimentSigma0 = &co.Scalars.ExperimentSpliceSigma0
		esw.RNGPool = co.Pool.Tgroups
		esw.TickQueue = co.expSpliceTick
		esw.NotifyQueue = co.expSpliceNotify
		co.wg.Add(1)
		go func() { defer co.wg.Done(); esw.Run() }()
	}
}

// abort panics with a formatted message, per spec.md §7: invariant
// violations are unrecoverable programmer/data errors, not run-time
// conditions a caller can react to.
func abort(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

// Run drives the full optimize/burn-in/sample state machine, spec.md
// §4.E, and shuts the worker pools down before returning. The returned
// error is an external quantifier failure (spec.md §7) or an output
// writer failure; every other failure mode is an invariant violation and
// panics instead.
func (co *Coordinator) Run() error {
	defer co.shutdown()

	if err := co.writeMetadata(); err != nil {
		return err
	}

	co.currPhase.Store(PhaseOptimize)
	co.optimize.Store(true)
	for i := 0; i < co.Cfg.NumOptRounds; i++ {
		if err := co.timedTick(); err != nil {
			return err
		}
	}
	co.optimize.Store(false)

	if !co.Cfg.NoPriors {
		for _, h := range co.Handles {
			if err := h.EngagePriors(); err != nil {
				return errors.Wrap(err, "engaging priors")
			}
		}
	}

	if err := co.writeRow(0); err != nil {
		return err
	}

	co.currPhase.Store(PhaseBurnin)
	for i := 0; i < co.Cfg.Burnin; i++ {
		if err := co.timedTick(); err != nil {
			return err
		}
	}

	co.burnIn.Store(false)
	co.currPhase.Store(PhaseSampling)

	for i := 1; i < co.Cfg.NumSamples; i++ {
		if err := co.timedTick(); err != nil {
			return err
		}
		if err := co.writeRow(i); err != nil {
			return err
		}
	}

	co.currPhase.Store(PhaseDone)
	return nil
}

// timedTick runs one tick, records its wall-clock duration into
// tickMillis, and advances the tick counter a progress monitor reads via
// CurrentTick.
func (co *Coordinator) timedTick() error {
	start := time.Now()
	err := co.tick(false)
	co.tickMillis.Add(int(time.Since(start).Milliseconds()))
	co.currTick.Add(1)
	return err
}

// CurrentTick returns the number of ticks completed so far in this run.
func (co *Coordinator) CurrentTick() int64 {
	return co.currTick.Load()
}

// CurrentPhase returns the coordinator's current run phase.
func (co *Coordinator) CurrentPhase() string {
	return co.currPhase.Load().(string)
}

// TickTrend returns the mean tick duration (milliseconds) over the older
// and more recent halves of the tick-duration history. Both are zero
// until the history has filled once. A recent mean below the older one
// means ticks are speeding up, e.g. once a condition's cache warms.
func (co *Coordinator) TickTrend() (older, recent float64) {
	first := co.tickMillis.FirstHalf()
	second := co.tickMillis.SecondHalf()
	if first == nil || second == nil {
		return 0, 0
	}

	var sum, n float64
	for first.Next() {
		sum += float64(first.Value())
		n++
	}
	older = sum / n

	sum, n = 0, 0
	for second.Next() {
		sum += float64(second.Value())
		n++
	}
	recent = sum / n

	return older, recent
}

// tick runs one full coordinator tick, spec.md §4.E steps (a)-(f).
// writeOutput is accepted for symmetry with the source's sample(bool) but
// output writing in this implementation happens in Run, after the tick
// returns, so every recorded row reflects a fully settled state.
func (co *Coordinator) tick(_ bool) error {
	for k := 0; k < co.Dataset.K; k++ {
		co.pushHyperparameters(k)
	}

	for k := 0; k < co.Dataset.K; k++ {
		co.quantTick.Push(k)
	}

	co.drawCoordinatorScalars()

	for k := 0; k < co.Dataset.K; k++ {
		co.quantNotify.Pop()
	}
	if err := co.errs.Err(); err != nil {
		return err
	}

	co.Abundances.Rescale(co.Cfg.SampleScalingTruncation, co.Cfg.SampleScalingQuantile)

	nRanges := chunkRanges(co.Dataset.N, co.Cfg.BlockSize)
	jRanges := chunkRanges(co.Dataset.J(), co.Cfg.BlockSize)

	for _, r := range nRanges {
		co.condMeanShapeTick.Push(r)
	}
	for _, r := range jRanges {
		co.condSpliceTick.Push(r)
	}
	for range nRanges {
		co.condMeanShapeNotify.Pop()
	}
	for range jRanges {
		co.condSpliceNotify.Pop()
	}

	for _, r := range nRanges {
		co.expMeanShapeTick.Push(r)
	}
	for _, r := range jRanges {
		co.expSpliceTick.Push(r)
	}
	for range nRanges {
		co.expMeanShapeNotify.Pop()
	}
	for range jRanges {
		co.expSpliceNotify.Pop()
	}

	return nil
}

// pushHyperparameters copies the coordinator's current hierarchical state
// into sample k's quantifier handle, spec.md §4.E step (a) and §9's
// "shared handle" design note: the handle reads this block while ticking,
// so it must be fully written before that sample's quantTick is pushed.
func (co *Coordinator) pushHyperparameters(k int) {
	hp := co.Handles[k].Hyperparameters()
	c := co.Dataset.Condition[k]

	hp.Scale = co.Abundances.Scale[k]

	if len(hp.Mean) != co.Dataset.N {
		abort("quant handle %d hyperparameter Mean has length %d, want %d", k, len(hp.Mean), co.Dataset.N)
	}
	for n := 0; n < co.Dataset.N; n++ {
		hp.Mean[n] = co.Condition.MeanAt(c, n)
	}
	copy(hp.Shape, co.Condition.Shape)

	for j := 0; j < co.Dataset.J(); j++ {
		for kk := 0; kk < co.SpliceIndex.MemberCount(j); kk++ {
			flat := co.SpliceIndex.Flat(j, kk)
			hp.SpliceMu[flat] = co.ConditionSplice.MuAt(c, j, kk)
			hp.SpliceSigma[flat] = co.ConditionSplice.SigmaAt(j, kk)
		}
	}
}

// drawCoordinatorScalars draws the process-global scalars on the
// coordinator's own thread while the quantification workers run
// concurrently in the background, spec.md §4.E step (b).
func (co *Coordinator) drawCoordinatorScalars() {
	src := co.Pool.Coordinator

	co.Scalars.CshapeBeta = co.cshapeBetaSampler.Draw(src,
		co.Scalars.CshapeBeta, co.Scalars.ConditionShapeAlpha, co.Condition.Shape,
		co.Scalars.ConditionShapeBetaA, co.Scalars.ConditionShapeBetaB)

	co.Scalars.CspliceBeta = co.cspliceBetaSampler.Draw(src,
		co.Scalars.CspliceBeta, co.Scalars.ConditionSpliceAlpha, co.ConditionSplice.Sigma,
		co.Scalars.ConditionSpliceBetaA, co.Scalars.ConditionSpliceBetaB)

	residuals := make([]float64, 0, co.ConditionSplice.C*co.SpliceIndex.TotalK)
	for j := 0; j < co.Dataset.J(); j++ {
		for kk := 0; kk < co.SpliceIndex.MemberCount(j); kk++ {
			for c := 0; c < co.ConditionSplice.C; c++ {
				residuals = append(residuals, co.ConditionSplice.MuAt(c, j, kk)-co.ExperimentSplice.MuAt(j, kk))
			}
		}
	}
	co.Scalars.EspliceSigma = co.espliceSigmaSampler.Draw(src,
		co.Scalars.EspliceSigma, residuals,
		co.Scalars.ExperimentSpliceSigmaAlpha, co.Scalars.ExperimentSpliceSigmaBeta)
	co.ExperimentSplice.Sigma = co.Scalars.EspliceSigma

	co.Experiment.Shape = co.Cfg.ExperimentShape
}

// chunkRanges partitions [0, n) into half-open IdxRanges of at most
// blockSize indices, spec.md §4.E's fan-out granularity.
func chunkRanges(n, blockSize int) []worker.IdxRange {
	if n == 0 {
		return nil
	}
	ranges := make([]worker.IdxRange, 0, (n+blockSize-1)/blockSize)
	for first := 0; first < n; first += blockSize {
		last := first + blockSize
		if last > n {
			last = n
		}
		ranges = append(ranges, worker.IdxRange{First: first, Last: last})
	}
	return ranges
}

// shutdown pushes one sentinel per worker goroutine to every tick queue,
// waits for every worker to exit, then closes the output writer.
func (co *Coordinator) shutdown() {
	n := co.Cfg.NumThreads
	for i := 0; i < n; i++ {
		co.quantTick.Push(-1)
		co.condMeanShapeTick.Push(worker.Sentinel)
		co.expMeanShapeTick.Push(worker.Sentinel)
		co.condSpliceTick.Push(worker.Sentinel)
		co.expSpliceTick.Push(worker.Sentinel)
	}
	co.wg.Wait()

	for _, h := range co.Handles {
		_ = h.Stop()
	}

	if co.Output != nil {
		_ = co.Output.Close()
	}
}
