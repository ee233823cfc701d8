package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// InitLogger builds the process-wide logger. Production emits JSON with
// ISO8601 timestamps; any other env gets the colored console encoder for
// local runs.
func InitLogger(env string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	zap.ReplaceGlobals(l)
	return nil
}

// GetLogger returns the process logger. When InitLogger has not run, as in
// tests, it falls back to a development logger.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger, _ = zap.NewDevelopment()
	}
	return logger
}

// SyncLogger flushes buffered entries; call on shutdown
func SyncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
