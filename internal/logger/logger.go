// Package logger builds the zap logger used across the service.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/va2ai/bvaapi2/internal/model"
)

// New builds a logger from config. The prod environment emits JSON for log
// shippers; everything else uses the console encoder for local work. An
// unknown level falls back to info.
func New(cfg model.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	var zcfg zap.Config
	if cfg.Env == "prod" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
