package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger shared by every oscillator component.
type Logger struct {
	*zap.Logger
}

// NewLogger creates an info level production logger.
func NewLogger() (*Logger, error) {
	return NewLoggerWithLevel(zapcore.InfoLevel)
}

// NewLoggerWithLevel creates a production logger writing JSON lines to stdout
// at the given level. Internal zap errors go to stderr.
func NewLoggerWithLevel(level zapcore.Level) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

// NewLoggerFromLevelName accepts the level names understood by zapcore
// ("debug", "info", "warn", "error"...).
func NewLoggerFromLevelName(name string) (*Logger, error) {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	return NewLoggerWithLevel(level)
}

// NewNopLogger discards everything.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Component returns a child logger named after a pipeline stage, so entries
// from the feed, the oscillator and the sinks can be told apart.
func (l *Logger) Component(name string) *Logger {
	if l == nil || l.Logger == nil {
		return NewNopLogger()
	}

	return &Logger{Logger: l.Named(name).With(zap.String("component", name))}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	if l.Logger == nil {
		return nil
	}

	return l.Logger.Sync()
}
