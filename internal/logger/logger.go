// Package logger provides a small leveled logger. Three levels: off (no
// output), normal (info/warn/error), verbose (adds debug). Safe for
// concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls verbosity.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

const (
	tagDebug = "[DBG] "
	tagInfo  = "[INF] "
	tagWarn  = "[WRN] "
	tagError = "[ERR] "
)

// Logger is a leveled logger over a single output. All methods are safe for
// concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// New creates a logger at the given level writing to out. A nil out means
// os.Stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(out, "", log.Ltime),
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) emit(min Level, tag, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= min {
		l.out.Output(3, tag+fmt.Sprintf(format, args...))
	}
}

// Debug logs at debug level (verbose mode only).
func (l *Logger) Debug(format string, args ...any) {
	l.emit(LevelVerbose, tagDebug, format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.emit(LevelNormal, tagInfo, format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.emit(LevelNormal, tagWarn, format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.emit(LevelNormal, tagError, format, args...)
}
