// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a spreadsheet into the data.csv consumed by the
// transform run. Backends are pluggable: a container running in2csv for
// real workbooks, or a validating copy when the source is already CSV.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/sheetpub/internal/container"
	"github.com/pdiddy/sheetpub/pkg/types"
)

// Converter writes the CSV rendition of a workbook to w.
type Converter interface {
	Convert(ctx context.Context, wb types.Workbook, w io.Writer) error
}

// NewConverter builds the converter selected by cfg.Backend. The container
// backend detects Docker or Podman and verifies the image is present.
func NewConverter(ctx context.Context, cfg types.ConversionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendCopy:
		return CopyConverter{}, nil
	case types.BackendContainer, "":
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(ctx, rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}

// ConvertWorkbook converts wb to wb.CSVPath, printing one status line to w.
// The CSV is skipped when it already exists, is non-empty, and is not older
// than the workbook. Output is written to a temp file and renamed, so a
// failed conversion leaves any previous CSV in place.
func ConvertWorkbook(ctx context.Context, c Converter, wb types.Workbook, w io.Writer) types.ConversionStatus {
	src, err := os.Stat(wb.Path)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", wb.Path, err)
		return types.ConversionFailed
	}

	if dst, err := os.Stat(wb.CSVPath); err == nil && dst.Size() > 0 && !dst.ModTime().Before(src.ModTime()) {
		fmt.Fprintf(w, "skipped:   %s (%s is up to date)\n", wb.Path, wb.CSVPath)
		return types.ConversionSkipped
	}

	if dir := filepath.Dir(wb.CSVPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", wb.Path, err)
			return types.ConversionFailed
		}
	}

	if err := writeCSV(ctx, c, wb); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", wb.Path, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", wb.Path, wb.CSVPath)
	return types.ConversionDone
}

func writeCSV(ctx context.Context, c Converter, wb types.Workbook) error {
	tmp := wb.CSVPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := c.Convert(ctx, wb, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	info, err := os.Stat(tmp)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if info.Size() == 0 {
		os.Remove(tmp)
		return fmt.Errorf("conversion produced empty output")
	}

	return os.Rename(tmp, wb.CSVPath)
}
