// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the explorer's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

// New returns a production (JSON) or development (console) logger at the
// configured level. Output goes to stderr unless outputPaths are given; the
// terminal UI passes a file so log lines do not tear the screen.
func New(cfg types.LogConfig, outputPaths ...string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	if cfg.JSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if len(outputPaths) > 0 {
		zc.OutputPaths = outputPaths
		zc.ErrorOutputPaths = outputPaths
		if !cfg.JSON {
			zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
