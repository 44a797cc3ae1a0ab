// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrick/logrotate/rotator"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Rotated log files roll at 10 MiB and the last 30 are kept.
const (
	logRollKB  = 10 * 1024
	logMaxRoll = 30
)

// NewLogger builds the CLI logger: human-readable lines on stderr and, when
// cfg.LogFile is set, JSON lines in a rotated file. The returned close
// function flushes the logger and releases the file.
func NewLogger(cfg Config, stderr io.Writer) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	console := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(console), zapcore.AddSync(stderr), level),
	}

	var r *rotator.Rotator
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
			return nil, nil, fmt.Errorf("config: create log directory: %w", err)
		}
		r, err = rotator.New(cfg.LogFile, logRollKB, false, logMaxRoll)
		if err != nil {
			return nil, nil, fmt.Errorf("config: create log rotator: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(r),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closeFn := func() {
		_ = logger.Sync()
		if r != nil {
			_ = r.Close()
		}
	}
	return logger, closeFn, nil
}
