package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Development environments get the console
// encoder; everything else logs JSON.
func New(env string) (*zap.Logger, error) {
	var config zap.Config

	if env == "development" || env == "dev" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

// Init builds the logger and installs it as the zap global, returning a
// function that flushes buffered entries.
func Init(env string) (*zap.Logger, func(), error) {
	log, err := New(env)
	if err != nil {
		return nil, nil, err
	}

	restore := zap.ReplaceGlobals(log)
	return log, func() {
		_ = log.Sync()
		restore()
	}, nil
}
