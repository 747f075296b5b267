//go:build mage

// Package main contains Mage build targets for sheetpub. CI runs the CI
// target on every push: it builds the CLI, converts the workbook, derives
// result.json, and publishes it into the site directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "sheetpub"
	cmdPkg  = "./cmd/sheetpub"
)

var binPath = filepath.Join(binDir, binName)

// Default runs when mage is called without a target.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("SHEETPUB_BUILD_VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes the binary and generated artifacts.
func Clean() error {
	for _, p := range []string{binDir, "result.json", "result.json.tmp"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// CI runs the full publication pipeline in order and stops at the first
// failing stage.
func CI() {
	mg.SerialDeps(Lint, Test, Build, Convert, Transform, Publish)
}
