// Package logging builds the shared zap logger and the per-subsystem child
// loggers used across snipforge. Library packages accept a logger and default
// to a nop, so the transpiler core stays silent unless the caller opts in.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a logging subsystem.
type Category string

const (
	CategoryTranspile Category = "transpile"
	CategoryTestgen   Category = "testgen"
	CategoryVerify    Category = "verify"
	CategoryWatch     Category = "watch"
)

// New builds the process logger. Debug mode switches to the development
// encoder with debug-level output.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Named returns the child logger for a category, nop-safe.
func Named(logger *zap.Logger, cat Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(cat))
}
