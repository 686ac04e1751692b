package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CraigKelly/tgibbs/gibbs"
	"github.com/CraigKelly/tgibbs/model"
	"github.com/CraigKelly/tgibbs/output"
	"github.com/CraigKelly/tgibbs/quant"
)

var analyzeParams struct {
	datasetFile string
	outputDir   string

	burnin       int
	numSamples   int
	numOptRounds int
	numThreads   int
	rngSeed      int64
	noPriors     bool

	scalingTruncation int
	scalingQuantile   float64
	minSpliceSigma    float64

	monitor     bool
	monitorAddr string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the Gibbs sampler over a dataset",
	RunE:  runAnalyze,
}

func init() {
	flags := analyzeCmd.Flags()

	flags.StringVar(&analyzeParams.datasetFile, "dataset", "", "dataset description JSON file (required)")
	flags.StringVar(&analyzeParams.outputDir, "output", "tgibbs-output", "output directory for posterior samples")

	cfg := gibbs.DefaultConfig()
	flags.IntVar(&analyzeParams.burnin, "burnin", cfg.Burnin, "number of burn-in ticks")
	flags.IntVar(&analyzeParams.numSamples, "num-samples", cfg.NumSamples, "number of posterior samples to record")
	flags.IntVar(&analyzeParams.numOptRounds, "num-opt-rounds", cfg.NumOptRounds, "number of optimization-phase ticks")
	flags.IntVar(&analyzeParams.numThreads, "num-threads", cfg.NumThreads, "goroutines per worker kind")
	flags.Int64Var(&analyzeParams.rngSeed, "seed", cfg.RngSeed, "RNG seed")
	flags.BoolVar(&analyzeParams.noPriors, "no-priors", cfg.NoPriors, "skip engaging hierarchical priors after optimization")

	flags.IntVar(&analyzeParams.scalingTruncation, "scaling-truncation", cfg.SampleScalingTruncation, "sample-scaling truncation count")
	flags.Float64Var(&analyzeParams.scalingQuantile, "scaling-quantile", cfg.SampleScalingQuantile, "sample-scaling quantile")
	flags.Float64Var(&analyzeParams.minSpliceSigma, "min-splice-sigma", cfg.AnalyzeMinSpliceSigma, "floor for condition splice sigma")

	flags.BoolVar(&analyzeParams.monitor, "monitor", false, "serve run progress over HTTP")
	flags.StringVar(&analyzeParams.monitorAddr, "monitor-addr", ":8000", "address for the progress monitor")

	if err := analyzeCmd.MarkFlagRequired("dataset"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ds, err := loadDataset(analyzeParams.datasetFile)
	if err != nil {
		return err
	}

	cfg := gibbs.DefaultConfig()
	cfg.Burnin = analyzeParams.burnin
	cfg.NumSamples = analyzeParams.numSamples
	cfg.NumOptRounds = analyzeParams.numOptRounds
	cfg.NumThreads = analyzeParams.numThreads
	cfg.RngSeed = analyzeParams.rngSeed
	cfg.NoPriors = analyzeParams.noPriors
	cfg.SampleScalingTruncation = analyzeParams.scalingTruncation
	cfg.SampleScalingQuantile = analyzeParams.scalingQuantile
	cfg.AnalyzeMinSpliceSigma = analyzeParams.minSpliceSigma

	idx := model.NewSpliceIndex(ds)
	factory := &quant.FakeFactory{N: ds.N, SpliceLen: idx.TotalK, Seed: cfg.RngSeed}

	out, err := output.NewDirWriter(analyzeParams.outputDir)
	if err != nil {
		return errors.Wrap(err, "opening output writer")
	}

	co, err := gibbs.New(cfg, ds, factory, out)
	if err != nil {
		return errors.Wrap(err, "initializing coordinator")
	}

	var mon *Monitor
	if analyzeParams.monitor {
		mon = NewMonitor(analyzeParams.monitorAddr)
		if err := mon.Start(co); err != nil {
			return errors.Wrap(err, "starting progress monitor")
		}
		defer mon.Stop()
	}

	fmt.Printf("tgibbs analyze: %d samples, %d transcripts, %d conditions, %d spliced tgroups\n",
		ds.K, ds.N, ds.C, ds.J())

	if err := co.Run(); err != nil {
		return errors.Wrap(err, "running sampler")
	}

	fmt.Printf("wrote %d samples to %s\n", cfg.NumSamples, analyzeParams.outputDir)
	return nil
}
