package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetpub/internal/dataset"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of sheetpub",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sheetpub %s (dataset %s)\n", version, dataset.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
