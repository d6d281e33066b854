package lib

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for the application, backed by zap
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a logger writing human-readable output to stderr at the
// given level
func NewLogger(level zapcore.Level) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		// Development config only fails on bad sink paths; fall back to no-op
		return &Logger{sugar: zap.NewNop().Sugar()}
	}
	return &Logger{sugar: logger.Sugar()}
}

// NewNopLogger returns a logger that discards everything, for tests
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Debug logs a debug message with key/value fields
func (l *Logger) Debug(message string, fields ...interface{}) {
	l.sugar.Debugw(message, fields...)
}

// Info logs an informational message with key/value fields
func (l *Logger) Info(message string, fields ...interface{}) {
	l.sugar.Infow(message, fields...)
}

// Warn logs a warning message with key/value fields
func (l *Logger) Warn(message string, fields ...interface{}) {
	l.sugar.Warnw(message, fields...)
}

// Error logs an error message with key/value fields
func (l *Logger) Error(message string, fields ...interface{}) {
	l.sugar.Errorw(message, fields...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// LogStepStart logs the start of a pipeline step
func LogStepStart(logger *Logger, step string, run string) {
	logger.Info("Step started",
		"step", step,
		"run", run,
	)
}

// LogStepComplete logs the completion of a pipeline step
func LogStepComplete(logger *Logger, step string, run string, duration time.Duration) {
	logger.Info("Step completed",
		"step", step,
		"run", run,
		"duration", duration,
	)
}

// LogStepFailed logs a failed pipeline step
func LogStepFailed(logger *Logger, step string, run string, err error, retryable bool) {
	logger.Error("Step failed",
		"step", step,
		"run", run,
		"error", err,
		"retryable", retryable,
	)
}

// LogRetry logs retry attempts
func LogRetry(logger *Logger, operation string, attempt int, maxAttempts int, err error) {
	logger.Warn("Retrying operation",
		"operation", operation,
		"attempt", attempt+1,
		"max_attempts", maxAttempts,
		"error", err,
	)
}

// LogCandidateDropped logs a candidate absorbed during evaluation
func LogCandidateDropped(logger *Logger, transformationID string, reason string) {
	logger.Debug("Candidate dropped",
		"transformation_id", transformationID,
		"reason", reason,
	)
}
