// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of converting a workbook to CSV.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Workbook identifies a spreadsheet and the CSV produced from it.
type Workbook struct {
	// Path is the local filesystem path to the spreadsheet.
	Path string `json:"path" yaml:"path"`

	// Sheet names the worksheet to export. Empty selects the first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`

	// CSVPath is where the converted CSV is written.
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// Status tracks whether the workbook has been converted.
	Status ConversionStatus `json:"status" yaml:"status"`
}
