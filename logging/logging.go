// Package logging contains the leveled, named loggers used by ppmtool.
package logging

import (
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewLogger("ppmtool")
)

// ReplaceGlobal replaces the global logger.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the global logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewLoggerConfig returns a new default logger config.
func NewLoggerConfig() zap.Config {
	// from https://github.com/uber-go/zap/blob/2314926ec34c23ee21f3dd4399438469668f8097/config.go#L135
	// but disable stacktraces, use same keys as prod, and color levels.
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a new logger that outputs Info+ logs to stderr.
func NewLogger(name string) Logger {
	return newStderrLogger(name, zapcore.InfoLevel)
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stderr.
func NewDebugLogger(name string) Logger {
	return newStderrLogger(name, zapcore.DebugLevel)
}

// NewBlankLogger returns a new logger that discards everything. Useful as a default for library
// callers that do not care about diagnostics.
func NewBlankLogger(name string) Logger {
	return &impl{name: name, level: zap.NewAtomicLevelAt(zapcore.DebugLevel), core: zapcore.NewNopCore()}
}

// NewTestLogger returns a new logger that outputs Debug+ logs to the test's log.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also saves logs to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	observerCore, observedLogs := observer.New(level)
	testCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(NewLoggerConfig().EncoderConfig),
		zapcore.AddSync(testWriter{tb}),
		level,
	)
	return &impl{name: "", level: level, core: zapcore.NewTee(testCore, observerCore)}, observedLogs
}

func newStderrLogger(name string, lvl zapcore.Level) Logger {
	config := NewLoggerConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	sink, _, err := zap.Open(config.OutputPaths...)
	if err != nil {
		sink = zapcore.Lock(os.Stderr)
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), sink, config.Level)
	return &impl{name: name, level: config.Level, core: core}
}
