package log

import (
	"fmt"
	"io"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package loggers. They discard output until Initialize is called, so
// library callers never need to set them up.
var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)

	logger = zap.NewNop()
)

// Initialize backs the package loggers with a zap logger writing to stderr.
// verbose enables info output; otherwise only warnings and errors are shown.
func Initialize(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return use(l)
}

// use installs l as the backend of the package loggers.
func use(l *zap.Logger) error {
	info, err := zap.NewStdLogAt(l, zapcore.InfoLevel)
	if err != nil {
		return err
	}
	warn, err := zap.NewStdLogAt(l, zapcore.WarnLevel)
	if err != nil {
		return err
	}
	errl, err := zap.NewStdLogAt(l, zapcore.ErrorLevel)
	if err != nil {
		return err
	}
	logger = l
	InfoLog, WarningLog, ErrorLog = info, warn, errl
	return nil
}

// Logger returns the structured logger behind the package loggers.
func Logger() *zap.Logger {
	return logger
}

// Close flushes buffered log entries.
func Close() {
	_ = logger.Sync()
}
