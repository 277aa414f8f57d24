package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/emuconfig"
)

var (
	dumpOutput    string
	dumpDefaulted bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the resolved settings registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := buildSyncer(nil)
		if err != nil {
			return err
		}

		if dumpDefaulted {
			report := s.ReloadWithReport()
			for _, label := range report.Defaulted {
				fmt.Fprintln(cmd.OutOrStdout(), label)
			}
			return nil
		}
		return emuconfig.Encode(cmd.OutOrStdout(), s.Values().Snapshot(), dumpOutput)
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "toml", "output format: toml, json or yaml")
	dumpCmd.Flags().BoolVar(&dumpDefaulted, "defaulted", false, "list only labels left at their default")
}
