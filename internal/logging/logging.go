// Package logging decouples the import pipeline from a concrete logging
// framework. Components receive a Logger and never import logrus directly,
// which keeps them testable with the Discard logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the structured logging interface used throughout the pipeline.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a logger with a single field attached.
	WithField(key string, value interface{}) Logger
}

// LogrusAdapter backs the Logger interface with logrus.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// New creates a logrus-backed Logger with the given level and format
// ("text" or "json"). An unknown level falls back to info.
func New(level, format string) Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

// FromLogrus wraps an existing logrus logger, such as the one owned by the
// CLI root command.
func FromLogrus(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

// Discard returns a logger that drops everything. Intended for tests.
func Discard() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.entry.WithFields(convert(fields)).Debug(msg)
}

func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.entry.WithFields(convert(fields)).Info(msg)
}

func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.entry.WithFields(convert(fields)).Warn(msg)
}

func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.entry.WithFields(convert(fields)).Error(msg)
}

func (l *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{entry: l.entry.WithError(err)}
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{entry: l.entry.WithField(key, value)}
}

func convert(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
