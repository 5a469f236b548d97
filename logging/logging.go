// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging builds the zap logger shared by the server.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/danielhkuo/grocery-list/cliparse"
)

// New returns a console logger in development mode and a JSON logger in
// production mode. When cfg.LogFile is set, JSON lines are also written to a
// rotating file.
func New(cfg cliparse.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.LogMode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if cfg.LogFile == "" {
		return zapConfig.Build(zap.AddCaller())
	}

	var stdoutEncoder zapcore.Encoder
	if cfg.LogMode == "production" {
		stdoutEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		stdoutEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(newRotatingFile(cfg.LogFile)),
			zapConfig.Level,
		),
		zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), zapConfig.Level),
	)
	return zap.New(core, zap.AddCaller()), nil
}

func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
	}
}
