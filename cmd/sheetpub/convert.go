package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetpub/internal/convert"
	"github.com/pdiddy/sheetpub/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [workbook]",
	Short: "Convert a spreadsheet to data.csv",
	Long: `Convert exports one worksheet of a workbook (.xlsx, .xlsm, .xls) to CSV
by running csvkit's in2csv in a Docker or Podman container. With the copy
backend the source must already be CSV; it is checked for a header row and
copied. An existing CSV newer than the workbook is left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.Conversion.Workbook = args[0]
		}

		conv, err := convert.NewConverter(cmd.Context(), cfg.Conversion)
		if err != nil {
			return err
		}
		logger.Debugf("converting with %s backend", cfg.Conversion.Backend)

		wb := types.Workbook{
			Path:    cfg.Conversion.Workbook,
			Sheet:   cfg.Conversion.Sheet,
			CSVPath: cfg.Conversion.Output,
		}
		if status := convert.ConvertWorkbook(cmd.Context(), conv, wb, cmd.OutOrStdout()); status == types.ConversionFailed {
			return fmt.Errorf("converting %s failed", wb.Path)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().String("backend", "container", "conversion backend: container or copy")
	convertCmd.Flags().String("sheet", "", "worksheet to export (default: first sheet)")
	convertCmd.Flags().String("image", "sheetpub-in2csv:latest", "container image providing in2csv")
	convertCmd.Flags().String("output", "data.csv", "CSV file to write")

	bindFlag(convertCmd, "backend", "conversion.backend")
	bindFlag(convertCmd, "sheet", "conversion.sheet")
	bindFlag(convertCmd, "image", "conversion.image")
	bindFlag(convertCmd, "output", "conversion.output")

	rootCmd.AddCommand(convertCmd)
}
