// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sheetpub/internal/transform"
	"github.com/pdiddy/sheetpub/pkg/types"
)

func testCfg() types.RunConfig {
	return types.DefaultPipelineConfig().Run
}

// readResult decodes result.json into generic maps for comparison.
func readResult(t *testing.T, fsys afero.Fs, path string) []map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantRule transform.Rule
		want     []map[string]any
	}{
		{
			name:     "product",
			csv:      "Value1,Value2\n2,3\n5,4\n",
			wantRule: transform.RuleProduct,
			want: []map[string]any{
				{"Value1": 2.0, "Value2": 3.0, "ProcessedValue": 6.0},
				{"Value1": 5.0, "Value2": 4.0, "ProcessedValue": 20.0},
			},
		},
		{
			name:     "amount",
			csv:      "Amount\n10\n",
			wantRule: transform.RuleDouble,
			want:     []map[string]any{{"Amount": 10.0, "ProcessedValue": 20.0}},
		},
		{
			name:     "constant",
			csv:      "Foo\n1\n",
			wantRule: transform.RuleConstant,
			want:     []map[string]any{{"Foo": 1.0, "ProcessedValue": 100.0}},
		},
		{
			name:     "header only",
			csv:      "Foo\n",
			wantRule: transform.RuleConstant,
			want:     []map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "data.csv", []byte(tt.csv), 0o644))

			var stdout bytes.Buffer
			res, err := Run(context.Background(), fsys, testCfg(), &stdout, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRule, res.Rule)
			assert.Equal(t, len(tt.want), res.Records)
			assert.Equal(t, tt.want, readResult(t, fsys, "result.json"))
			assert.Contains(t, stdout.String(), "Wrote")

			exists, _ := afero.Exists(fsys, "result.json.tmp")
			assert.False(t, exists, "temp file should be renamed away")
		})
	}
}

func TestRun_OutputFormat(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data.csv", []byte("Value2,Value1\n3,2\n"), 0o644))

	_, err := Run(context.Background(), fsys, testCfg(), &bytes.Buffer{}, nil)
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "result.json")
	require.NoError(t, err)
	want := "[\n    {\n        \"Value2\": 3,\n        \"Value1\": 2,\n        \"ProcessedValue\": 6\n    }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestRun_MissingInput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "result.json", []byte("prior"), 0o644))

	var stdout bytes.Buffer
	_, err := Run(context.Background(), fsys, testCfg(), &stdout, nil)
	require.Error(t, err)

	assert.True(t, IsKind(err, InputUnavailable))
	assert.Contains(t, strings.ToLower(err.Error()), "not found")
	assert.Empty(t, stdout.String())

	data, err := afero.ReadFile(fsys, "result.json")
	require.NoError(t, err)
	assert.Equal(t, "prior", string(data))
}

func TestRun_MalformedInput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data.csv", []byte("A\n\"x\n"), 0o644))

	_, err := Run(context.Background(), fsys, testCfg(), &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, InputUnavailable))
	assert.NotContains(t, err.Error(), "not found")

	exists, _ := afero.Exists(fsys, "result.json")
	assert.False(t, exists)
}

func TestRun_VersionIncompatible(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data.csv", []byte("Amount\n1\n"), 0o644))

	cfg := testCfg()
	cfg.RequireVersion = ">= 3.0.0"

	_, err := Run(context.Background(), fsys, cfg, &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, VersionIncompatible))
	assert.Contains(t, err.Error(), "incompatible")

	exists, _ := afero.Exists(fsys, "result.json")
	assert.False(t, exists)
}

func TestRun_NonNumeric(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data.csv", []byte("Value1,Value2\n2,x\n"), 0o644))

	_, err := Run(context.Background(), fsys, testCfg(), &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, TransformFailed))

	exists, _ := afero.Exists(fsys, "result.json")
	assert.False(t, exists)
}

func TestRun_OutputWriteFailed(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "data.csv", []byte("Amount\n1\n"), 0o644))
	require.NoError(t, afero.WriteFile(base, "result.json", []byte("prior"), 0o644))
	fsys := afero.NewReadOnlyFs(base)

	var stdout bytes.Buffer
	_, err := Run(context.Background(), fsys, testCfg(), &stdout, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, OutputWriteFailed))
	assert.Empty(t, stdout.String())

	data, err := afero.ReadFile(base, "result.json")
	require.NoError(t, err)
	assert.Equal(t, "prior", string(data))
}

func TestRun_CustomPaths(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "in/sheet.csv", []byte("Amount\n2.5\n"), 0o644))

	cfg := testCfg()
	cfg.Input = "in/sheet.csv"
	cfg.Output = "out/site/result.json"
	cfg.Indent = 2

	res, err := Run(context.Background(), fsys, cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "out/site/result.json", res.Output)
	assert.Equal(t, []map[string]any{{"Amount": 2.5, "ProcessedValue": 5.0}}, readResult(t, fsys, cfg.Output))
}

func TestRun_Cancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data.csv", []byte("Amount\n1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, fsys, testCfg(), &bytes.Buffer{}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
