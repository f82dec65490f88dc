package logging

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing into stderr, configured by the log section of the config.
func New(cfg config.Log) (*zap.Logger, error) {
	return NewWithSink(cfg, zapcore.Lock(os.Stderr))
}

// NewWithSink builds the same logger as New does, writing into the sink instead.
func NewWithSink(cfg config.Log, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	var encoderCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder

	switch cfg.Format {
	case "json", "":
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "timestamp"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, errors.Newf("unsupported log format: %q (supported: json, console)", cfg.Format)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(cfg.Level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
