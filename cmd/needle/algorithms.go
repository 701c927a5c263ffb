package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/spf13/cobra"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List available algorithms",
	Args:  cobra.NoArgs,
	RunE:  runAlgorithms,
}

func runAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOVERLAPPING\tDESCRIPTION")
	for _, algo := range matcher.Algorithms() {
		overlapping := "yes"
		if !algo.Overlapping() {
			overlapping = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", algo, overlapping, algo.Description())
	}
	return w.Flush()
}
