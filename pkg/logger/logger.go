// Package logger builds the zap logger from configuration.
package logger

import (
	"os"

	"github.com/spacekeep/capture-service/pkg/fileurl"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Level is parsed by zapcore.ParseLevel; invalid values fall back to
	// info.
	Level string
	// File is the log file path; empty disables file output.
	File string
	// Production switches the file output to JSON.
	Production bool
}

// NewLogger builds a logger writing to stderr and, when configured, to
// a log file.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.Lock(os.Stderr), level),
	}

	if cfg.File != "" {
		if err := fileurl.CreatePath(cfg.File, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}

		var encoder zapcore.Encoder
		if cfg.Production {
			fileConfig := zap.NewProductionEncoderConfig()
			fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			encoder = zapcore.NewJSONEncoder(fileConfig)
		} else {
			fileConfig := zap.NewDevelopmentEncoderConfig()
			fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			encoder = zapcore.NewConsoleEncoder(fileConfig)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
