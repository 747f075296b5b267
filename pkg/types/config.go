// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunConfig holds settings for the transform run.
type RunConfig struct {
	// Input is the CSV file read by the run (default "data.csv").
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the JSON file written by the run (default "result.json").
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Indent is the number of spaces used to indent the JSON output (default 4).
	Indent int `json:"indent" yaml:"indent" mapstructure:"indent"`

	// RequireVersion is a semver constraint the dataset library version
	// must satisfy (default ">= 2.0.0").
	RequireVersion string `json:"require_version" yaml:"require_version" mapstructure:"require_version"`
}

// ConversionBackend identifies the spreadsheet-to-CSV tool.
type ConversionBackend string

const (
	// BackendContainer pipes the workbook through an in2csv container image.
	BackendContainer ConversionBackend = "container"
	// BackendCopy treats the source as CSV already and copies it.
	BackendCopy ConversionBackend = "copy"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: container or copy.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Workbook is the spreadsheet to convert (e.g. "data.xlsx").
	Workbook string `json:"workbook" yaml:"workbook" mapstructure:"workbook"`

	// Sheet names the worksheet to export. Empty selects the first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`

	// Image is the container image providing in2csv.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Output is the CSV file produced by the conversion (default "data.csv").
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// PublishFormat names an artifact rendition written by the publish stage.
type PublishFormat string

const (
	FormatJSON   PublishFormat = "json"
	FormatYAML   PublishFormat = "yaml"
	FormatSQLite PublishFormat = "sqlite"
)

// PublishConfig holds settings for the publish stage.
type PublishConfig struct {
	// SiteDir is the static-site directory receiving the artifacts (default "public").
	SiteDir string `json:"site_dir" yaml:"site_dir" mapstructure:"site_dir"`

	// Formats lists the renditions to publish. JSON is always included.
	Formats []PublishFormat `json:"formats" yaml:"formats" mapstructure:"formats"`

	// UploadURL, when set, receives an HTTP PUT of the JSON artifact.
	UploadURL string `json:"upload_url,omitempty" yaml:"upload_url,omitempty" mapstructure:"upload_url"`

	// UploadToken is sent as a bearer token with the upload. It is read
	// from .secrets/upload-token when not configured.
	UploadToken string `json:"-" yaml:"-" mapstructure:"upload_token"`

	// Timeout is the HTTP request timeout for the upload.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 and 503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Run        RunConfig        `json:"run" yaml:"run" mapstructure:"run"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Publish    PublishConfig    `json:"publish" yaml:"publish" mapstructure:"publish"`
}

// DefaultPipelineConfig returns the configuration used when no config file,
// environment variable, or flag overrides a setting.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Run: RunConfig{
			Input:          "data.csv",
			Output:         "result.json",
			Indent:         4,
			RequireVersion: ">= 2.0.0",
		},
		Conversion: ConversionConfig{
			Backend:  BackendContainer,
			Workbook: "data.xlsx",
			Image:    "sheetpub-in2csv:latest",
			Output:   "data.csv",
		},
		Publish: PublishConfig{
			SiteDir:    "public",
			Formats:    []PublishFormat{FormatJSON},
			Timeout:    30 * time.Second,
			MaxRetries: 5,
		},
	}
}
