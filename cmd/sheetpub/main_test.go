// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "data.csv")
	out := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(in, []byte("Amount\n5\n"), 0o644))

	stdout, _, err := execute(t, "run", "--input", in, "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 1 records to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"Amount\": 5,\n        \"ProcessedValue\": 10\n    }\n]\n", string(data))
}

func TestRunCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result.json")

	_, stderr, err := execute(t, "run", "--input", filepath.Join(dir, "data.csv"), "--output", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, stderr, "not found")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestPublishCommand(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "result.json")
	site := filepath.Join(dir, "public")
	require.NoError(t, os.WriteFile(artifact, []byte("[{\"A\": 1}]\n"), 0o644))

	stdout, _, err := execute(t, "publish", artifact, "--site-dir", site, "--formats", "json,yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "published:")

	assert.FileExists(t, filepath.Join(site, "result.json"))
	assert.FileExists(t, filepath.Join(site, "result.yaml"))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sheetpub dev (dataset 2.1.0)\n", stdout)
}
