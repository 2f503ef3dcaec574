// internal/logging/logging.go
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a sugared production logger at level.
// Output goes to stderr unless paths are given.
func New(level string, paths ...string) (*zap.SugaredLogger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = lvl > zapcore.DebugLevel
	if len(paths) > 0 {
		zc.OutputPaths = paths
		zc.ErrorOutputPaths = paths
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return l.Sugar(), nil
}
