// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostic logger shared by the CLI stages.
// Status and error lines meant for users are written directly to the
// command's output streams; this logger carries the extra detail shown
// with --verbose.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w. Warnings and errors are always
// written; debug and info only when verbose is set, prefixed with the level.
func New(w io.Writer, verbose bool) *zap.SugaredLogger {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if verbose {
			return true
		}
		return l >= zapcore.WarnLevel
	})

	levelKey := ""
	if verbose {
		levelKey = "level"
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         levelKey,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "\t",
	})

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), levels)).Sugar()
}
