package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tgibbs",
	Short: "Hierarchical Bayesian Gibbs sampler for transcript abundance",
	Long: `tgibbs drives a multithreaded Gibbs sampler over a hierarchical
Bayesian model of per-sample transcript abundance and splicing, coordinating
an external per-sample quantifier through an optimize/burn-in/sampling
state machine.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
