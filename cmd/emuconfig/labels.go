package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/emuconfig"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List every setting label with its default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, d := range emuconfig.NewValues().All() {
			fmt.Fprintf(tw, "%s\t%v\n", d.Label(), d.AnyDefault())
		}
		return tw.Flush()
	},
}
