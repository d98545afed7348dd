// Package logging builds the file-backed zap logger used by the whole
// application. The interactive UI owns the terminal, so nothing may write
// to stdout or stderr while it runs.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON file logger with rotation at the given path.
func New(path string) *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	return zap.New(core)
}
