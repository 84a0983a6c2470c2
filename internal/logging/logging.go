// Package logging builds the ndef command's zap logger and hands it to the
// library packages.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/internal/config"
	"github.com/wippyai/go-ndef/wellknown"
)

// New builds a logger writing to stderr at the configured level.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = !cfg.Development
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}

// Install makes l the logger of every library package.
func Install(l *zap.Logger) {
	ndef.SetLogger(l)
	wellknown.SetLogger(l)
}
