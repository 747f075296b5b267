// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner performs one end-to-end transform run: version gate, load
// data.csv, derive ProcessedValue, write result.json.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/sheetpub/internal/compat"
	"github.com/pdiddy/sheetpub/internal/dataset"
	"github.com/pdiddy/sheetpub/internal/transform"
	"github.com/pdiddy/sheetpub/pkg/types"
)

const libraryName = "dataset"

// Kind classifies a fatal run error.
type Kind int

const (
	VersionIncompatible Kind = iota + 1
	InputUnavailable
	TransformFailed
	OutputWriteFailed
)

func (k Kind) String() string {
	switch k {
	case VersionIncompatible:
		return "VersionIncompatible"
	case InputUnavailable:
		return "InputUnavailable"
	case TransformFailed:
		return "TransformFailed"
	case OutputWriteFailed:
		return "OutputWriteFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned for every fatal run failure. Path names the file
// involved, when there is one.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case VersionIncompatible:
		return e.Err.Error()
	case InputUnavailable:
		if errors.Is(e.Err, fs.ErrNotExist) {
			return fmt.Sprintf("input file %q not found", e.Path)
		}
		return fmt.Sprintf("reading input file %q: %v", e.Path, e.Err)
	case TransformFailed:
		return fmt.Sprintf("transforming dataset: %v", e.Err)
	case OutputWriteFailed:
		return fmt.Sprintf("writing output file %q: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a run *Error of kind k.
func IsKind(err error, k Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == k
}

// Result summarizes a successful run.
type Result struct {
	Rule    transform.Rule
	Records int
	Output  string
}

// Run executes one run against fsys. On success it prints a confirmation
// line to stdout. Every failure is returned as *Error, except cancellation
// of ctx which returns ctx.Err(); none of them touch an existing output file.
func Run(ctx context.Context, fsys afero.Fs, cfg types.RunConfig, stdout io.Writer, logger *zap.SugaredLogger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	if err := compat.Check(libraryName, dataset.Version, cfg.RequireVersion); err != nil {
		return Result{}, &Error{Kind: VersionIncompatible, Err: err}
	}
	logger.Debugf("%s library %s satisfies %q", libraryName, dataset.Version, cfg.RequireVersion)

	ds, err := dataset.Load(fsys, cfg.Input)
	if err != nil {
		return Result{}, &Error{Kind: InputUnavailable, Path: cfg.Input, Err: err}
	}
	logger.Debugf("loaded %d records with columns %v from %s", ds.Len(), ds.Columns, cfg.Input)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	rule := transform.Select(ds.Columns)
	out, err := transform.Transform(ds)
	if err != nil {
		return Result{}, &Error{Kind: TransformFailed, Path: cfg.Input, Err: err}
	}
	logger.Debugf("derived %s using rule %s", transform.ColumnProcessed, rule)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := writeAtomic(fsys, cfg.Output, out, cfg.Indent); err != nil {
		return Result{}, &Error{Kind: OutputWriteFailed, Path: cfg.Output, Err: err}
	}

	fmt.Fprintf(stdout, "Wrote %d records to %s\n", out.Len(), cfg.Output)
	return Result{Rule: rule, Records: out.Len(), Output: cfg.Output}, nil
}

// writeAtomic writes ds to a sibling temp file and renames it over path, so
// readers never observe a partially written result.
func writeAtomic(fsys afero.Fs, path string, ds *dataset.Dataset, indent int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if err := dataset.WriteJSON(f, ds, indent); err != nil {
		f.Close()
		fsys.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmp)
		return err
	}

	if err := fsys.Rename(tmp, path); err != nil {
		fsys.Remove(tmp)
		return err
	}
	return nil
}
