package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger adapts a *zap.Logger to ports.Logger.
type Logger struct {
	l *zap.Logger
}

// New builds a Logger writing to stderr. Verbose enables debug output; otherwise
// only warnings and errors are emitted. format "json" selects the production encoder.
func New(verbose bool, format string) (*Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{l: l}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{l: zap.NewNop()}
}

// NewTest returns a Logger that writes through t.Log.
func NewTest(t testing.TB) *Logger {
	return &Logger{l: zaptest.NewLogger(t)}
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.l
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.l.Sync()
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.l.Debug(msg, toZapFields(fields)...)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.l.Info(msg, toZapFields(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.l.Warn(msg, toZapFields(fields)...)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.l.Error(msg, append(toZapFields(fields), zap.Error(err))...)
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
