// Package logger provides structured logging for looptimer.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus logger
type Logger struct {
	log *logrus.Logger
}

// Entry accumulates fields for a single message at a fixed level
type Entry struct {
	level logrus.Level
	entry *logrus.Entry
}

// New creates a new logger instance writing to output (stderr when nil).
// Unknown levels fall back to info.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	l := New("panic", io.Discard)
	return l
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level string) bool {
	lv, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return false
	}
	return l.log.IsLevelEnabled(lv)
}

func (l *Logger) at(level logrus.Level) *Entry {
	return &Entry{level: level, entry: logrus.NewEntry(l.log)}
}

// Debug starts a debug message
func (l *Logger) Debug() *Entry { return l.at(logrus.DebugLevel) }

// Info starts an info message
func (l *Logger) Info() *Entry { return l.at(logrus.InfoLevel) }

// Warn starts a warning message
func (l *Logger) Warn() *Entry { return l.at(logrus.WarnLevel) }

// Error starts an error message
func (l *Logger) Error() *Entry { return l.at(logrus.ErrorLevel) }

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Float adds a float field
func (e *Entry) Float(key string, value float64) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Err adds an error field; a nil error adds nothing
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Msg writes the message with accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}

// ValidLevel reports whether level is one of debug, info, warn or error
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
