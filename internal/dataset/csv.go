// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// naValues are cell contents read as null, matching the usual spreadsheet
// and CSV export spellings of a missing value.
var naValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// columnKind is the scalar type inferred for a whole column.
type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindString
)

// Load reads the CSV file at path from fsys. Errors from opening the file
// are returned unwrapped so callers can test them with errors.Is against
// fs.ErrNotExist.
func Load(fsys afero.Fs, path string) (*Dataset, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV parses comma-separated values whose first row is the header.
// Each column is typed as a whole: int64 when every non-null cell is an
// integer, float64 when every non-null cell is a number, string otherwise.
// Null spellings (empty, NA, NaN, null, ...) become nil in every column.
// Short rows are padded with nil; rows longer than the header are an error.
// An empty input yields an empty Dataset with no columns.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}
	columns := dedupeColumns(header)

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing CSV: %w", err)
		}
		if len(row) > len(columns) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(columns), len(row))
		}
		rows = append(rows, row)
	}

	kinds := make([]columnKind, len(columns))
	for c := range columns {
		kinds[c] = inferKind(rows, c)
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		rec := make(Record, len(columns)+1)
		for c, name := range columns {
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			rec[name] = parseCell(cell, kinds[c])
		}
		records[i] = rec
	}

	return New(columns, records...), nil
}

// dedupeColumns strips a UTF-8 byte order mark from the first header and
// renames repeated headers "name.1", "name.2", ... so every column is
// addressable.
func dedupeColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[name] = true
		columns[i] = name
	}
	return columns
}

func inferKind(rows [][]string, c int) columnKind {
	kind := kindInt
	for _, row := range rows {
		if c >= len(row) || naValues[row[c]] {
			continue
		}
		cell := row[c]
		if kind == kindInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = kindFloat
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return kindString
		}
	}
	return kind
}

func parseCell(cell string, kind columnKind) any {
	if naValues[cell] {
		return nil
	}
	switch kind {
	case kindInt:
		v, _ := strconv.ParseInt(cell, 10, 64)
		return v
	case kindFloat:
		v, _ := strconv.ParseFloat(cell, 64)
		return v
	default:
		return cell
	}
}
