package core

import (
	"io"
	"log/slog"
)

type DefaultLogger struct {
	level   LogLevel
	handler *slog.Logger
	ui      UI
	output  io.Writer
}

// NewDefaultLogger writes human readable lines through ui and structured
// records to output.
func NewDefaultLogger(ui UI, output io.Writer, level LogLevel) *DefaultLogger {
	handler := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slogLevel(level),
	}))

	return &DefaultLogger{
		level:   level,
		handler: handler,
		ui:      ui,
		output:  output,
	}
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelTrace, LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *DefaultLogger) Trace(msg string, args ...any) {
	if l.level <= LevelTrace {
		l.ui.Debug("TRACE: " + msg)
		l.handler.Debug(msg, args...)
	}
}

func (l *DefaultLogger) Debug(msg string, args ...any) {
	if l.level <= LevelDebug {
		l.ui.Debug(msg)
		l.handler.Debug(msg, args...)
	}
}

func (l *DefaultLogger) Info(msg string, args ...any) {
	if l.level <= LevelInfo {
		l.ui.Info(msg)
		l.handler.Info(msg, args...)
	}
}

func (l *DefaultLogger) Warn(msg string, args ...any) {
	if l.level <= LevelWarn {
		l.ui.Warning(msg)
		l.handler.Warn(msg, args...)
	}
}

func (l *DefaultLogger) Error(msg string, args ...any) {
	if l.level <= LevelError {
		l.ui.Error(msg)
		l.handler.Error(msg, args...)
	}
}

func (l *DefaultLogger) With(args ...any) Logger {
	return &DefaultLogger{
		level:   l.level,
		handler: l.handler.With(args...),
		ui:      l.ui,
		output:  l.output,
	}
}

func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level = level
}

var nopLogger Logger = NewDefaultLogger(&NoOpUI{}, io.Discard, LevelError+1)
