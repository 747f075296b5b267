//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert exports the workbook to data.csv. It is a no-op when the
// repository carries no workbook, since data.csv may be committed directly.
func Convert() error {
	mg.Deps(Build)
	workbook := os.Getenv("SHEETPUB_CONVERSION_WORKBOOK")
	if workbook == "" {
		workbook = "data.xlsx"
	}
	if _, err := os.Stat(workbook); os.IsNotExist(err) {
		return nil
	}
	return sh.RunV(binPath, "convert", workbook)
}

// Transform derives ProcessedValue from data.csv into result.json.
func Transform() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "run")
}

// Publish copies result.json into the site directory.
func Publish() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "publish")
}
