package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap.Logger to provide structured logging
type Logger struct {
	*zap.Logger
}

// Options configures where and how much the logger writes
type Options struct {
	Environment string
	Dir         string
	Level       string
}

// New creates a new logger instance based on the environment
func New(opts Options) (*Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// JSON encoder for files (without colors)
	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		newFileCore(opts.Dir, "lesson.log", fileEncoderConfig, level),
		newFileCore(opts.Dir, "error.log", fileEncoderConfig, zapcore.ErrorLevel),
	)

	// Stdout carries the lesson itself, so the console copy goes to stderr
	if opts.Environment != "production" {
		consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		core = zapcore.NewTee(
			core,
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(consoleEncoderConfig),
				zapcore.AddSync(os.Stderr),
				level,
			),
		)
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		Logger: logger,
	}, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Wrap adapts an existing zap logger, e.g. one built by zaptest
func Wrap(l *zap.Logger) *Logger {
	return &Logger{Logger: l}
}

func newFileCore(dir, name string, cfg zapcore.EncoderConfig, level zapcore.LevelEnabler) zapcore.Core {
	// Configure lumberjack for log rotation
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    100, // megabytes
		MaxBackups: 30,  // number of backups
		MaxAge:     30,  // days
		Compress:   true,
	}

	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(writer), level)
}

// Named returns a named logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger: l.Logger.Named(name),
	}
}

// With creates a child logger with the given fields
func (l *Logger) With(fields ...zapcore.Field) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
	}
}

// Sugar returns a sugared logger
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.Logger.Sugar()
}
