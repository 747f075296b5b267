package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetpub/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Derive ProcessedValue from data.csv and write result.json",
	Long: `Run loads the CSV input, adds a ProcessedValue column to every record,
and writes the records as an indented JSON array.

ProcessedValue is Value1*Value2 when both columns exist, otherwise Amount*2
when Amount exists, otherwise 100. The exit status is 1 when the dataset
library version is incompatible, the input is missing or unreadable, a value
is not numeric, or the output cannot be written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, err = runner.Run(cmd.Context(), afero.NewOsFs(), cfg.Run, cmd.OutOrStdout(), logger)
		return err
	},
}

func init() {
	runCmd.Flags().String("input", "data.csv", "CSV file to read")
	runCmd.Flags().String("output", "result.json", "JSON file to write")
	runCmd.Flags().Int("indent", 4, "spaces per JSON indentation level (0 for compact)")
	runCmd.Flags().String("require-version", ">= 2.0.0", "semver constraint on the dataset library version")

	bindFlag(runCmd, "input", "run.input")
	bindFlag(runCmd, "output", "run.output")
	bindFlag(runCmd, "indent", "run.indent")
	bindFlag(runCmd, "require-version", "run.require_version")

	rootCmd.AddCommand(runCmd)
}
