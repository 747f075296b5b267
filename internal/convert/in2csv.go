// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/sheetpub/internal/container"
	"github.com/pdiddy/sheetpub/pkg/types"
)

// in2csvFormats maps workbook extensions to in2csv --format values.
var in2csvFormats = map[string]string{
	".xlsx": "xlsx",
	".xlsm": "xlsx",
	".xls":  "xls",
}

// ContainerConverter converts workbooks by piping them through an image
// whose entrypoint is csvkit's in2csv.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter verifies that image exists in rt before returning.
func NewContainerConverter(ctx context.Context, rt container.Runtime, image string) (*ContainerConverter, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("in2csv image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

func (c *ContainerConverter) Convert(ctx context.Context, wb types.Workbook, w io.Writer) error {
	format, ok := in2csvFormats[strings.ToLower(filepath.Ext(wb.Path))]
	if !ok {
		return fmt.Errorf("unsupported workbook format %q", filepath.Ext(wb.Path))
	}

	f, err := os.Open(wb.Path)
	if err != nil {
		return fmt.Errorf("opening workbook %s: %w", wb.Path, err)
	}
	defer f.Close()

	args := []string{"--format", format}
	if wb.Sheet != "" {
		args = append(args, "--sheet", wb.Sheet)
	}

	if err := c.runtime.Run(ctx, c.image, args, f, w); err != nil {
		return fmt.Errorf("converting %s with in2csv: %w", wb.Path, err)
	}
	return nil
}
