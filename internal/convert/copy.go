// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/sheetpub/pkg/types"
)

// CopyConverter handles sources that are already CSV. It checks that the
// file has a parseable header row and copies it unchanged.
type CopyConverter struct{}

func (CopyConverter) Convert(_ context.Context, wb types.Workbook, w io.Writer) error {
	data, err := os.ReadFile(wb.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", wb.Path, err)
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("%s has no CSV header: %w", wb.Path, err)
	}
	if len(header) == 0 || (len(header) == 1 && header[0] == "") {
		return fmt.Errorf("%s has an empty CSV header", wb.Path)
	}

	_, err = w.Write(data)
	return err
}
