package logger

import (
	"strings"

	"campus-jobs/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger: JSON in production, a console encoder when
// the app runs in development.
func New(cfg config.AppConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.LogLevel))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("app", cfg.AppName), zap.String("env", cfg.Environment)), nil
}

func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
