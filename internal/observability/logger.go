package observability

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. format is "json" or "console";
// level is any zap level name ("debug", "info", ...).
func NewLogger(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

// LoggerWithRequestID annotates the logger with the request correlation ID
// from ctx, if present.
func LoggerWithRequestID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return logger.With(zap.String("request_id", requestID))
	}
	return logger
}
