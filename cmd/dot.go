package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/CraigKelly/tgibbs/model"
)

var dotParams struct {
	datasetFile string
}

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Write a graphviz description of a dataset's tgroup/transcript/condition structure",
	RunE:  runDot,
}

func init() {
	dotCmd.Flags().StringVar(&dotParams.datasetFile, "dataset", "", "dataset description JSON file (required)")
	if err := dotCmd.MarkFlagRequired("dataset"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(dotCmd)
}

func runDot(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(dotParams.datasetFile)
	if err != nil {
		return err
	}
	return writeDot(cmd.OutOrStdout(), ds)
}

// writeDot renders ds as a graphviz graph: one cluster per tgroup linking
// its member transcripts, and one cluster per condition linking its member
// samples -- the two adjacency structures every worker kind in this module
// partitions its work along.
func writeDot(w io.Writer, ds *model.Dataset) error {
	fmt.Fprintf(w, "strict graph G {\n")

	for tid, members := range ds.TgroupTids {
		fmt.Fprintf(w, "    subgraph cluster_tgroup_%d {\n", tid)
		fmt.Fprintf(w, "        label=\"tgroup %d\";\n", tid)
		for _, t := range members {
			fmt.Fprintf(w, "        transcript_%d;\n", t)
		}
		for i, t1 := range members {
			for _, t2 := range members[i+1:] {
				fmt.Fprintf(w, "        transcript_%d -- transcript_%d;\n", t1, t2)
			}
		}
		fmt.Fprintf(w, "    }\n")
	}

	for c, members := range ds.ConditionSamples {
		fmt.Fprintf(w, "    subgraph cluster_condition_%d {\n", c)
		fmt.Fprintf(w, "        label=\"condition %d\";\n", c)
		for _, k := range members {
			fmt.Fprintf(w, "        sample_%d;\n", k)
		}
		fmt.Fprintf(w, "    }\n")
	}

	fmt.Fprintf(w, "}\n")
	return nil
}
