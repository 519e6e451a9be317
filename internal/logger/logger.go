// Package logger builds the zap loggers used by the CLI.
// Library callers get zap.NewNop() unless they pass their own logger.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidLevel indicates an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat indicates an unknown output format.
var ErrInvalidFormat = errors.New("invalid log format")

// Config holds the logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error (empty = warn)
	Format string    // text or json (empty = text)
	Output io.Writer // nil = os.Stderr
	File   string    // Optional rotated log file, written in addition to Output
}

// Rotation limits for File.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// DefaultLevel keeps the CLI quiet unless something needs attention.
const DefaultLevel = "warn"

// New creates a logger writing to cfg.Output.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          zapcore.OmitKey,
			CallerKey:        zapcore.OmitKey,
			FunctionKey:      zapcore.OmitKey,
			MessageKey:       "msg",
			StacktraceKey:    zapcore.OmitKey,
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      bracketLevelEncoder,
			EncodeTime:       bracketTimeEncoder,
			EncodeDuration:   zapcore.StringDurationEncoder,
			ConsoleSeparator: " ",
		})
	case "json":
		encoder = zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
		})
	default:
		return nil, fmt.Errorf("%w: %q (use text or json)", ErrInvalidFormat, cfg.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
		})
		core = zapcore.NewTee(core, zapcore.NewCore(encoder.Clone(), fileWriter, level))
	}
	return zap.New(core), nil
}

// ParseLevel converts a level name to a zap level. Empty means DefaultLevel.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return l, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	switch l {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return l, nil
	}
	return l, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// LevelFor picks the effective level: -q wins over -v, and either wins
// over the configured level.
func LevelFor(verbose, quiet bool, configured string) string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	case configured != "":
		return configured
	}
	return DefaultLevel
}

func bracketTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}

func bracketLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}
