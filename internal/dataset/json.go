// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
)

// MarshalJSON encodes the dataset as a compact JSON array with one object
// per record. Object keys follow the column order. NaN and infinite floats
// are written as null.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range d.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for c, name := range d.Columns {
			if c > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(&buf, name); err != nil {
				return nil, fmt.Errorf("encoding column name %q: %w", name, err)
			}
			buf.WriteByte(':')
			if err := writeValue(&buf, r[name]); err != nil {
				return nil, fmt.Errorf("encoding record %d column %q: %w", i, name, err)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// WriteJSON writes the dataset to w as a JSON array indented by indent
// spaces per level, followed by a newline. An indent of zero or less writes
// the compact form.
func WriteJSON(w io.Writer, d *Dataset, indent int) error {
	compact, err := d.MarshalJSON()
	if err != nil {
		return err
	}

	out := compact
	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
			return fmt.Errorf("indenting JSON: %w", err)
		}
		out = buf.Bytes()
	}

	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func writeValue(buf *bytes.Buffer, v any) error {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		v = nil
	}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// ReadJSON decodes a JSON array of flat objects, such as one written by
// WriteJSON, back into a Dataset. Columns are ordered by first appearance.
// Integral numbers decode as int64 and other numbers as float64; nested
// arrays or objects are rejected.
func ReadJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	ds := New(nil)
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("record %d: %w", ds.Len(), err)
		}
		rec := Record{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("record %d: expected key, got %v", ds.Len(), tok)
			}
			val, err := dec.Token()
			if err != nil {
				return nil, err
			}
			v, err := scalar(val)
			if err != nil {
				return nil, fmt.Errorf("record %d column %q: %w", ds.Len(), key, err)
			}
			if !slices.Contains(ds.Columns, key) {
				ds.Columns = append(ds.Columns, key)
			}
			rec[key] = v
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		ds.Records = append(ds.Records, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return ds, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func scalar(tok json.Token) (any, error) {
	switch v := tok.(type) {
	case nil, string, bool:
		return v, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v.Float64()
	case json.Delim:
		return nil, errors.New("nested values are not supported")
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
