package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is a small leveled logger. One instance is built in main and handed
// to the components that need it; nothing logs through package globals.
type Logger struct {
	level Level
	out   *log.Logger
}

// New builds a logger writing to stderr. Unknown level names fall back to
// info.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stderr)
}

func NewWithWriter(level string, w io.Writer) *Logger {
	return &Logger{
		level: parseLevel(level),
		out:   log.New(w, "", log.LstdFlags|log.LUTC),
	}
}

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) logf(level Level, tag, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.out.Printf("%s %s", tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, "[DEBUG]", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, "[INFO]", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, "[WARN]", format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, "[ERROR]", format, args...)
}
