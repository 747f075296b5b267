// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"

	"github.com/pdiddy/sheetpub/internal/dataset"
)

const recordsTable = "records"

// writeSQLite stores ds as table records in a fresh SQLite file at path,
// one row per record in record order (rowid). Columns are untyped so each
// value keeps its own storage class. SQLite needs a real file, so fsys must
// be backed by the OS filesystem.
func writeSQLite(ctx context.Context, fsys afero.Fs, path string, ds *dataset.Dataset) error {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return fmt.Errorf("sqlite rendition requires the OS filesystem, got %T", fsys)
	}

	tmp := path + ".tmp"
	os.Remove(tmp)
	if err := fillSQLite(ctx, tmp, ds); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func fillSQLite(ctx context.Context, path string, ds *dataset.Dataset) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// An artifact of "[]" carries no column names, so there is no table to create.
	if len(ds.Columns) == 0 {
		return db.PingContext(ctx)
	}

	cols := make([]string, len(ds.Columns))
	marks := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", recordsTable, strings.Join(cols, ", "))
	if _, err := db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", recordsTable, strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(ds.Columns))
	for i, r := range ds.Records {
		for c, name := range ds.Columns {
			args[c] = r[name]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// quoteIdent quotes a column name as an SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
