package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chaptersix/taskgrid/common/log/tag"
)

type (
	// Logger is the logging interface used throughout the server.
	// Messages take typed tags rather than format arguments.
	Logger interface {
		Debug(msg string, tags ...tag.Tag)
		Info(msg string, tags ...tag.Tag)
		Warn(msg string, tags ...tag.Tag)
		Error(msg string, tags ...tag.Tag)
	}

	zapLogger struct {
		zl *zap.Logger
	}
)

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(zl *zap.Logger) Logger {
	return &zapLogger{zl: zl.WithOptions(zap.AddCallerSkip(1))}
}

// NewDefaultLogger returns a production-configured logger.
func NewDefaultLogger() Logger {
	zl, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails on invalid config, and ours is fixed.
		panic(err)
	}
	return NewZapLogger(zl)
}

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() Logger {
	return &zapLogger{zl: zap.NewNop()}
}

// NewTestLogger returns a development-configured logger for use in tests.
func NewTestLogger() Logger {
	zl, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return NewZapLogger(zl)
}

// NewObservedLogger returns a logger plus the zap observer recording every
// entry it writes. Tests use it to assert on logged output.
func NewObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func (l *zapLogger) Debug(msg string, tags ...tag.Tag) {
	l.zl.Debug(msg, fields(tags)...)
}

func (l *zapLogger) Info(msg string, tags ...tag.Tag) {
	l.zl.Info(msg, fields(tags)...)
}

func (l *zapLogger) Warn(msg string, tags ...tag.Tag) {
	l.zl.Warn(msg, fields(tags)...)
}

func (l *zapLogger) Error(msg string, tags ...tag.Tag) {
	l.zl.Error(msg, fields(tags)...)
}

func fields(tags []tag.Tag) []zap.Field {
	fs := make([]zap.Field, len(tags))
	for i, t := range tags {
		fs[i] = t.Field()
	}
	return fs
}
