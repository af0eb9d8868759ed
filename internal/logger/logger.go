// Package logger provides the diagnostic logger used by sealnote.
//
// Log entries carry message IDs, sizes and outcomes. Plaintext, passwords,
// derived keys and envelope text are never logged.
package logger

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// EnvLogLevel selects the level when no flag overrides it.
const EnvLogLevel = "SEALNOTE_LOG_LEVEL"

// Logger interface is used to allow tests to inject custom loggers.
type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
	WithField(key string, value interface{}) *log.Entry
	Writer() io.Writer
	SetWriter(io.Writer)
}

type logger struct {
	*log.Logger
}

// NewLogger returns a new Logger instance backed by Logrus.
func NewLogger(level log.Level) Logger {
	l := log.New()
	l.SetLevel(level)
	l.Out = os.Stderr
	l.Formatter = &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	return &logger{l}
}

// FromEnv builds a Logger from SEALNOTE_LOG_LEVEL, defaulting to warn.
// verbose forces debug.
func FromEnv(verbose bool) Logger {
	if verbose {
		return NewLogger(log.DebugLevel)
	}
	return NewLogger(ParseLevel(os.Getenv(EnvLogLevel)))
}

// ParseLevel parses a level name, falling back to warn.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Discard returns a Logger that writes nothing.
func Discard() Logger {
	l := NewLogger(log.PanicLevel)
	l.SetWriter(io.Discard)
	return l
}

func (l *logger) Writer() io.Writer {
	return l.Out
}

func (l *logger) SetWriter(writer io.Writer) {
	l.Out = writer
}
