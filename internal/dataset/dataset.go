// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset is the tabular-processing library behind sheetpub: an
// ordered column list plus records, loaded from CSV with per-column scalar
// inference and written as a JSON array of objects in column order.
package dataset

import "slices"

// Version is the semantic version of the dataset library. The runner checks
// it against the configured constraint before loading anything.
const Version = "2.1.0"

// Record is one row of a Dataset, keyed by column name. Values are string,
// int64, float64, or nil.
type Record map[string]any

// Dataset is an ordered sequence of records sharing one column set.
type Dataset struct {
	// Columns lists the column names in output order.
	Columns []string

	// Records holds the rows in input order.
	Records []Record
}

// New builds a Dataset from a column list and records. Records are stored
// as given; missing columns read as nil.
func New(columns []string, records ...Record) *Dataset {
	if records == nil {
		records = []Record{}
	}
	return &Dataset{Columns: columns, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	return slices.Contains(d.Columns, name)
}

// Clone returns a copy that shares no maps or slices with d.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: slices.Clone(d.Columns),
		Records: make([]Record, len(d.Records)),
	}
	for i, r := range d.Records {
		c := make(Record, len(r)+1)
		for k, v := range r {
			c[k] = v
		}
		out.Records[i] = c
	}
	return out
}

// SetColumn assigns fn's result to column name on every record. A new
// column is appended after the existing ones; an existing column keeps its
// position and has its values replaced. The first error from fn aborts the
// assignment and leaves d unchanged.
func (d *Dataset) SetColumn(name string, fn func(i int, r Record) (any, error)) error {
	values := make([]any, len(d.Records))
	for i, r := range d.Records {
		v, err := fn(i, r)
		if err != nil {
			return err
		}
		values[i] = v
	}

	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
	for i, r := range d.Records {
		r[name] = values[i]
	}
	return nil
}
