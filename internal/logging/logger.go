// Package logging builds the zap loggers used across the application.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger writing to stderr when verbose is set,
// and a no-op logger otherwise.
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	return build(zap.NewDevelopmentConfig(), "stderr")
}

// NewFile returns a logger that writes JSON lines to path. It is used by the
// TUI, which owns the terminal.
func NewFile(path string) *zap.Logger {
	return build(zap.NewProductionConfig(), path)
}

func build(cfg zap.Config, output string) *zap.Logger {
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
