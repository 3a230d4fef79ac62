// Package logging builds the zap loggers used across kidsmath.
// Every subsystem logs under its own category; categories can be switched
// off individually through the logging section of the config file.
package logging

import (
	"fmt"
	"strings"
	"time"

	"kidsmath/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config loading
	CategoryGenerate Category = "generate" // Formula generation
	CategoryVerify   Category = "verify"   // Self-check of generated formulas
	CategoryEval     Category = "eval"     // Expression evaluation requests
	CategoryQuiz     Category = "quiz"     // Interactive quiz sessions
	CategoryStore    Category = "store"    // Quiz history database
	CategoryExport   Category = "export"   // Spreadsheet export
	CategoryServer   Category = "server"   // HTTP API
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryBoot, CategoryGenerate, CategoryVerify, CategoryEval,
	CategoryQuiz, CategoryStore, CategoryExport, CategoryServer,
}

// ParseLevel maps a config level name to a zap level. Unknown names are info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds the root logger. verbose forces debug level regardless of cfg.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zcfg.OutputPaths = append(zcfg.OutputPaths, cfg.File)
	}

	level := ParseLevel(cfg.Level)
	if verbose || cfg.DebugMode {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// For returns the logger for one category.
//
// Outside debug mode category loggers drop debug entries. In debug mode a
// category switched off in cfg.Categories only reports warnings and errors.
func For(base *zap.Logger, cfg config.LoggingConfig, category Category) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	named := base.Named(string(category))
	switch {
	case !cfg.DebugMode:
		return named.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	case !cfg.IsCategoryEnabled(string(category)):
		return named.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	default:
		return named
	}
}

// Timer helps measure operation duration
type Timer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation
func StartTimer(logger *zap.Logger, operation string) *Timer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{logger: logger, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		t.logger.Warn(t.op+" was slow", zap.Duration("elapsed", elapsed), zap.Duration("threshold", threshold))
	} else {
		t.logger.Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
