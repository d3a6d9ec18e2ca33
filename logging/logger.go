// Package logging wraps go.uber.org/zap with the small, named-child-logger
// API the rest of this module's packages are written against.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging priority, matching zap's own level scale so no
// translation is needed when building a zapcore.Core.
type Level int8

const (
	DebugLevel Level = -1
	InfoLevel  Level = 0
	WarnLevel  Level = 1
	ErrorLevel Level = 2
	PanicLevel Level = 4
	FatalLevel Level = 5
)

// Logger is a named *zap.Logger with a mutable level, clonable so that
// package-scoped sub-loggers (matching, conditional, engine) can each
// hold their own name and level while sharing the same output sink.
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

// New builds a Logger around an existing zapcore.Core and config.
func New(core zapcore.Core, cfg *zap.Config) *Logger {
	return &Logger{
		Logger: zap.New(core),
		config: cfg,
	}
}

// NewFromEnv builds a Logger for "dev" (human-readable console) or any
// other value (structured JSON, info level).
func NewFromEnv(env string) *Logger {
	var (
		encoderConfig zapcore.EncoderConfig
		encoder       zapcore.Encoder
		cfg           zap.Config
		level         zapcore.Level
	)

	if env == "dev" {
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "C",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "L",
			LineEnding:     "\n",
			MessageKey:     "M",
			NameKey:        "N",
			TimeKey:        "T",
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		level = zapcore.Level(DebugLevel)
		cfg = zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Development:      true,
			Encoding:         "console",
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
	} else {
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeName:     zapcore.FullNameEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "level",
			LineEnding:     "\n",
			MessageKey:     "message",
			NameKey:        "logger",
			StacktraceKey:  "stacktrace",
			TimeKey:        "@timestamp",
		}
		encoder = zapcore.NewJSONEncoder(encoderConfig)
		level = zapcore.Level(InfoLevel)
		cfg = zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Encoding:         "json",
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), level)
	return New(core, &cfg)
}

// NewTestLogger returns a Logger suitable for unit tests: debug level,
// console-encoded, writing to stdout so `go test -v` shows it.
func NewTestLogger() *Logger {
	return NewFromEnv("dev")
}

func (l *Logger) Clone() *Logger {
	cfg := cloneConfig(l.config)
	zl, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{Logger: zl, config: cfg, name: l.name}
}

func (l *Logger) GetLevel() Level {
	return Level(l.config.Level.Level())
}

func (l *Logger) SetLevel(level Level) {
	l.config.Level.SetLevel(zapcore.Level(level))
}

func (l *Logger) GetName() string { return l.name }

// GetLevelString returns the current level as its lowercase zap name, e.g.
// "debug", "info".
func (l *Logger) GetLevelString() string {
	return zapcore.Level(l.GetLevel()).String()
}

// With returns a child logger with the given structured fields attached to
// every subsequent entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
		config: l.config,
		name:   l.name,
	}
}

// AtExit flushes any buffered log entries. Call via defer from main.
func (l *Logger) AtExit() {
	_ = l.Logger.Sync()
}

// Named returns a child logger whose name is "parent.child", matching the
// hierarchical label convention used for engine/matching/conditional.
func (l *Logger) Named(name string) *Logger {
	c := l.Clone()
	newName := name
	if l.name != "" {
		newName = fmt.Sprintf("%s.%s", l.name, name)
	}
	return &Logger{
		Logger: c.Logger.Named(newName),
		config: c.config,
		name:   newName,
	}
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     make(map[string]interface{}),
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	return &c
}
