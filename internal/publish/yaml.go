// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sheetpub/internal/dataset"
)

// writeYAML renders ds as a YAML sequence of mappings, keys in column order.
func writeYAML(fsys afero.Fs, path string, ds *dataset.Dataset) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for i, r := range ds.Records {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, col := range ds.Columns {
			var key, val yaml.Node
			if err := key.Encode(col); err != nil {
				return fmt.Errorf("encoding column %q: %w", col, err)
			}
			if err := val.Encode(r[col]); err != nil {
				return fmt.Errorf("encoding record %d column %q: %w", i, col, err)
			}
			m.Content = append(m.Content, &key, &val)
		}
		doc.Content = append(doc.Content, m)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, buf.Bytes(), 0o644)
}
