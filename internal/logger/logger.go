// Package logger wraps zap so that the CLI can start with a silent logger
// and switch to a real one once the configured level is known.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the process-wide structured logger.
type Logger struct {
	// Log is the underlying zap logger. It is a no-op until Init succeeds.
	Log *zap.Logger
	out io.Writer
}

// New returns a Logger that discards everything and writes to stderr once
// initialised.
func New() *Logger {
	return &Logger{Log: zap.NewNop(), out: os.Stderr}
}

// NewWithWriter is New with a custom destination, used by tests.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{Log: zap.NewNop(), out: w}
}

// Init replaces the no-op logger with a console logger at the given level
// ("debug", "info", "warn", "error").
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(l.out),
		lvl,
	)
	l.Log = zap.New(core)
	return nil
}
