package core

type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	SetLevel(level LogLevel)
}

// LevelFromVerbosity maps a -v count onto a log level.
func LevelFromVerbosity(count int, debug bool) LogLevel {
	switch {
	case count >= 2:
		return LevelTrace
	case count == 1 || debug:
		return LevelDebug
	default:
		return LevelInfo
	}
}
