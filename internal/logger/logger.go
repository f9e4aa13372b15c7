// Package logger provides structured logging for paramkit.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
)

// Logger wraps logrus logger
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry accumulates fields for a single log line
type Entry struct {
	level logrus.Level
	entry *logrus.Entry
}

// New creates a logger writing to output (stderr when nil). Unknown levels
// fall back to info.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New("panic", io.Discard)
}

// ParseLevel converts a level name, defaulting to info
func ParseLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

// SetLevel changes the level after creation, once the config is known
func (l *Logger) SetLevel(level string) {
	l.log.SetLevel(ParseLevel(level))
}

// Level returns the current level name
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

// With returns a logger that adds key to every line
func (l *Logger) With(key string, value any) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{log: l.log, fields: fields}
}

func (l *Logger) at(level logrus.Level) *Entry {
	return &Entry{level: level, entry: l.log.WithFields(l.fields)}
}

// Debug starts a debug line
func (l *Logger) Debug() *Entry { return l.at(logrus.DebugLevel) }

// Info starts an info line
func (l *Logger) Info() *Entry { return l.at(logrus.InfoLevel) }

// Warn starts a warning line
func (l *Logger) Warn() *Entry { return l.at(logrus.WarnLevel) }

// Error starts an error line
func (l *Logger) Error() *Entry { return l.at(logrus.ErrorLevel) }

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Strs adds a string list field
func (e *Entry) Strs(key string, values []string) *Entry {
	e.entry = e.entry.WithField(key, strings.Join(values, ","))
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Float adds a float field
func (e *Entry) Float(key string, value float64) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, d time.Duration) *Entry {
	e.entry = e.entry.WithField(key, float64(d.Microseconds())/1000.0)
	return e
}

// Err adds an error field. Command failures also log their code and position.
func (e *Entry) Err(err error) *Entry {
	if err == nil {
		return e
	}
	e.entry = e.entry.WithError(err)
	if f := cmderr.From(err); f != nil {
		e.entry = e.entry.WithField("code", f.Code())
		if pos := f.Position(); pos != cmderr.NoPosition {
			e.entry = e.entry.WithField("position", pos)
		}
	}
	return e
}

// Msg writes the line
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
