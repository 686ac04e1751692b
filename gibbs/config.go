package gibbs

// Config collects every run-level knob spec.md §6 lists as coordinator
// configuration: tick counts, the RNG seed, scaling parameters, and the
// fixed prior hyperparameters handed to model.Scalars at startup.
type Config struct {
	// Burnin is the number of burn-in ticks run after optimization and
	// before the first recorded sample.
	Burnin int

	// NumSamples is the number of posterior samples recorded, including
	// the index-0 maximum-posterior sample written right after
	// optimization.
	NumSamples int

	// NumOptRounds is the number of optimization-phase ticks run before
	// burn-in.
	NumOptRounds int

	// NumThreads is the number of goroutines spawned per worker kind.
	NumThreads int

	// RngSeed seeds the deterministic rng.Pool.
	RngSeed int64

	// NoPriors, when true, skips EngagePriors on every quantification
	// handle after optimization -- spec.md §4.E step 2.
	NoPriors bool

	// SampleScalingTruncation and SampleScalingQuantile parameterize
	// Abundances.Rescale, spec.md §4.E step (d).
	SampleScalingTruncation int
	SampleScalingQuantile   float64

	// AnalyzeMinSpliceSigma floors csplice_sigma draws after burn-in.
	AnalyzeMinSpliceSigma float64

	// MaxNewtonSteps is carried in the configuration but is not passed to
	// the cond samplers: every Shredder uses shredder's own default of 10
	// Newton steps, whatever this field holds.
	MaxNewtonSteps int

	// ZeroEps is the initial value for cmean/emean (spec.md §6).
	ZeroEps float64

	// BlockSize is the number of indices handed to one worker invocation
	// per fan-out range, spec.md §4.E's 250-wide partitioning.
	BlockSize int

	// ExperimentShape is the configured constant eshape is held at every
	// tick (the source reassigns it from a fixed constant each sample()
	// call rather than letting it drift).
	ExperimentShape float64

	// Prior hyperparameters copied into model.Scalars at startup.
	ConditionShapeAlpha  float64
	ConditionShapeBetaA  float64
	ConditionShapeBetaB  float64
	ConditionSpliceAlpha float64
	ConditionSpliceBetaA float64
	ConditionSpliceBetaB float64

	ExperimentShapeAlpha       float64
	ExperimentShapeBeta        float64
	ExperimentSpliceSigmaAlpha float64
	ExperimentSpliceSigmaBeta  float64

	ExperimentMean0        float64
	ExperimentShape0       float64
	ExperimentSpliceMu0    float64
	ExperimentSpliceSigma0 float64
	ExperimentSpliceNu     float64
}

// DefaultConfig returns the spec.md §6 defaults.
func DefaultConfig() Config {
	return Config{
		Burnin:                  250,
		NumSamples:              250,
		NumOptRounds:            10,
		NumThreads:              4,
		RngSeed:                 0,
		NoPriors:                false,
		SampleScalingTruncation: 1000,
		SampleScalingQuantile:   0.75,
		AnalyzeMinSpliceSigma:   1e-3,
		MaxNewtonSteps:          10,
		ZeroEps:                 1e-6,
		BlockSize:               250,
		ExperimentShape:         2.0,

		ConditionShapeAlpha:  2.0,
		ConditionShapeBetaA:  2.0,
		ConditionShapeBetaB:  1.0,
		ConditionSpliceAlpha: 2.0,
		ConditionSpliceBetaA: 2.0,
		ConditionSpliceBetaB: 1.0,

		ExperimentShapeAlpha:       2.0,
		ExperimentShapeBeta:        1.0,
		ExperimentSpliceSigmaAlpha: 2.0,
		ExperimentSpliceSigmaBeta:  1.0,

		ExperimentMean0:        1e-6,
		ExperimentShape0:       2.0,
		ExperimentSpliceMu0:    0.5,
		ExperimentSpliceSigma0: 0.5,
		ExperimentSpliceNu:     5.0,
	}
}
