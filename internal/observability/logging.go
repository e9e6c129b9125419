// Package observability provides logging and metrics for the world server.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/realm/internal/config"
)

// NewLogger creates a structured logger writing to stderr. The "json" format
// uses production encoding and records stack traces from error level; the
// "console" format is colored, human-readable and records them from warn.
// Every entry carries a "service" field naming the binary when service is set.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, service string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	return newLogger(cfg.Format, level, service, zapcore.Lock(os.Stderr))
}

func newLogger(format string, level zapcore.Level, service string, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	encoder, traceAt, err := encoderFor(format)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(traceAt),
		zap.ErrorOutput(sink),
	}
	if service != "" {
		opts = append(opts, zap.Fields(zap.String("service", service)))
	}
	return zap.New(zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level)), opts...), nil
}

// encoderFor returns the encoder for format and the level from which entries
// carry a stack trace.
func encoderFor(format string) (zapcore.Encoder, zapcore.Level, error) {
	switch format {
	case "json":
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(enc), zapcore.ErrorLevel, nil
	case "console":
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(enc), zapcore.WarnLevel, nil
	default:
		return nil, zapcore.InvalidLevel, fmt.Errorf("unknown log format %q", format)
	}
}
