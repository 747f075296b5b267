// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish places a run's JSON artifact where a static site can serve
// it: copied into the site directory, optionally rendered as YAML and SQLite
// alongside, and optionally uploaded to a hosting endpoint.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/sheetpub/internal/dataset"
	"github.com/pdiddy/sheetpub/pkg/types"
)

// Report lists what a publish run produced.
type Report struct {
	// Files are the paths written under the site directory.
	Files []string
	// Uploaded reports whether the artifact was accepted by the upload URL.
	Uploaded bool
}

// Publisher publishes artifacts according to its configuration.
type Publisher struct {
	fs     afero.Fs
	cfg    types.PublishConfig
	client *http.Client
	logger *zap.SugaredLogger
}

// New creates a Publisher writing through fsys. A nil client gets one with
// cfg.Timeout; a nil logger discards diagnostics.
func New(fsys afero.Fs, cfg types.PublishConfig, client *http.Client, logger *zap.SugaredLogger) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Publisher{fs: fsys, cfg: cfg, client: client, logger: logger}
}

// Publish reads the JSON artifact and writes every configured rendition,
// printing one line per file to w. The JSON copy always happens first; a
// failing rendition stops the run and is returned.
func (p *Publisher) Publish(ctx context.Context, artifact string, w io.Writer) (Report, error) {
	var report Report

	data, err := afero.ReadFile(p.fs, artifact)
	if err != nil {
		return report, fmt.Errorf("reading artifact %s: %w", artifact, err)
	}
	ds, err := dataset.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return report, fmt.Errorf("parsing artifact %s: %w", artifact, err)
	}
	p.logger.Debugf("artifact %s has %d records, columns %v", artifact, ds.Len(), ds.Columns)

	if err := p.fs.MkdirAll(p.cfg.SiteDir, 0o755); err != nil {
		return report, fmt.Errorf("creating site directory %s: %w", p.cfg.SiteDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(artifact), filepath.Ext(artifact))
	jsonPath := filepath.Join(p.cfg.SiteDir, base+".json")
	if err := afero.WriteFile(p.fs, jsonPath, data, 0o644); err != nil {
		return report, fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	report.Files = append(report.Files, jsonPath)
	fmt.Fprintf(w, "published: %s\n", jsonPath)

	if slices.Contains(p.cfg.Formats, types.FormatYAML) {
		path := filepath.Join(p.cfg.SiteDir, base+".yaml")
		if err := writeYAML(p.fs, path, ds); err != nil {
			return report, fmt.Errorf("writing %s: %w", path, err)
		}
		report.Files = append(report.Files, path)
		fmt.Fprintf(w, "published: %s\n", path)
	}

	if slices.Contains(p.cfg.Formats, types.FormatSQLite) {
		path := filepath.Join(p.cfg.SiteDir, base+".db")
		if err := writeSQLite(ctx, p.fs, path, ds); err != nil {
			return report, fmt.Errorf("writing %s: %w", path, err)
		}
		report.Files = append(report.Files, path)
		fmt.Fprintf(w, "published: %s\n", path)
	}

	if p.cfg.UploadURL != "" {
		if err := p.upload(ctx, data); err != nil {
			return report, err
		}
		report.Uploaded = true
		fmt.Fprintf(w, "uploaded:  %s\n", p.cfg.UploadURL)
	}

	return report, nil
}
