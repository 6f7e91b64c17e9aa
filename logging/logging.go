package logging

import (
	"fmt"
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// A Logger writes messages at or above a minimum level to a standard library log.Logger
type Logger struct {
	level int
	out   *log.Logger
}

// CreateLogger is a factory for Loggers. A nil out logs to stderr with the standard flags.
func CreateLogger(level int, out *log.Logger) *Logger {
	if out == nil {
		out = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Logger{level: level, out: out}
}

// Level returns the minimum level of messages written by this Logger
func (l *Logger) Level() int {
	return l.level
}

// Enabled returns true iff messages at the given level will be written
func (l *Logger) Enabled(level int) bool {
	return l != nil && level >= l.level
}

// Logf writes a formatted message at the given level
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("[%s] %s", LogLevelToString(level), fmt.Sprintf(format, args...))
}

// Tracef writes a formatted message at TraceLevel
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Logf(TraceLevel, format, args...)
}

// Debugf writes a formatted message at DebugLevel
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(DebugLevel, format, args...)
}

// Infof writes a formatted message at InfoLevel
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(InfoLevel, format, args...)
}

// Warnf writes a formatted message at WarnLevel
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logf(WarnLevel, format, args...)
}

// Errorf writes a formatted message at ErrorLevel
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(ErrorLevel, format, args...)
}
