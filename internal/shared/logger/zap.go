package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lighter/common/internal/shared/requestctx"
)

// NewZapLogger builds the structured logger used by services from the same
// configuration as New.
func NewZapLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "text") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel(cfg.Level))

	return zc.Build()
}

func zapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
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

// ZapWithRequest is the zap counterpart of Logger.WithRequest.
func ZapWithRequest(ctx context.Context, zl *zap.Logger) *zap.Logger {
	if id := requestctx.RequestID(ctx); id != "" {
		return zl.With(zap.String("request_id", id))
	}
	return zl
}
