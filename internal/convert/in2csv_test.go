// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/sheetpub/pkg/types"
)

// fakeRuntime implements container.Runtime, recording the last Run call.
type fakeRuntime struct {
	imageErr error
	runErr   error
	output   string
	gotImage string
	gotArgs  []string
	gotInput string
}

func (f *fakeRuntime) Name() string { return "docker" }
func (f *fakeRuntime) Available(context.Context) bool { return true }

func (f *fakeRuntime) ImageExists(_ context.Context, _ string) error { return f.imageErr }

func (f *fakeRuntime) Run(_ context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotImage = image
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotInput = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestNewContainerConverter_MissingImage(t *testing.T) {
	rt := &fakeRuntime{imageErr: errors.New("no such image")}
	_, err := NewContainerConverter(context.Background(), rt, "sheetpub-in2csv:latest")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "in2csv image not available in docker") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestContainerConverter_Convert(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		sheet    string
		runErr   error
		wantArgs string
		wantErr  string
	}{
		{name: "xlsx first sheet", file: "data.xlsx", wantArgs: "--format xlsx"},
		{name: "xls named sheet", file: "Budget.XLS", sheet: "Q3", wantArgs: "--format xls --sheet Q3"},
		{name: "macro workbook", file: "data.xlsm", wantArgs: "--format xlsx"},
		{name: "unsupported extension", file: "data.ods", wantErr: "unsupported workbook format"},
		{name: "container failure", file: "data.xlsx", runErr: errors.New("exit status 2"), wantErr: "converting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte("workbook"), 0o644); err != nil {
				t.Fatal(err)
			}

			rt := &fakeRuntime{output: "Amount\n10\n", runErr: tt.runErr}
			conv, err := NewContainerConverter(context.Background(), rt, "sheetpub-in2csv:latest")
			if err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			err = conv.Convert(context.Background(), types.Workbook{Path: path, Sheet: tt.sheet}, &out)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := strings.Join(rt.gotArgs, " "); got != tt.wantArgs {
				t.Errorf("args = %q, want %q", got, tt.wantArgs)
			}
			if rt.gotImage != "sheetpub-in2csv:latest" {
				t.Errorf("image = %q", rt.gotImage)
			}
			if rt.gotInput != "workbook" {
				t.Errorf("stdin = %q, want workbook bytes", rt.gotInput)
			}
			if out.String() != "Amount\n10\n" {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestNewConverter_Backends(t *testing.T) {
	conv, err := NewConverter(context.Background(), types.ConversionConfig{Backend: types.BackendCopy})
	if err != nil {
		t.Fatalf("copy backend: %v", err)
	}
	if _, ok := conv.(CopyConverter); !ok {
		t.Errorf("copy backend returned %T", conv)
	}

	if _, err := NewConverter(context.Background(), types.ConversionConfig{Backend: "libreoffice"}); err == nil {
		t.Error("unknown backend should fail")
	}
}
