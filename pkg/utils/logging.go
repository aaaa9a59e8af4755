package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Logger returns the process logger, building a production logger on first
// use. LOG_FILE, when set, tees the JSON output into that file.
func Logger() *zap.Logger {
	if logger != nil {
		return logger
	}
	l, err := NewLogger(os.Getenv("LOG_FILE"), "info")
	if err != nil {
		l, _ = zap.NewProduction()
	}
	logger = l
	return logger
}

// SetLogger replaces the process logger.
func SetLogger(l *zap.Logger) { logger = l }

// NewLogger builds a JSON logger at the given level writing to stdout and,
// if logFile is not empty, appending to logFile as well.
func NewLogger(logFile, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
	if logFile == "" {
		return zap.New(consoleCore), nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
	return zap.New(zapcore.NewTee(fileCore, consoleCore)), nil
}
