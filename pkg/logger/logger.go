// Package logger provides structured logging with per-plugin context.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used throughout pack.
type Logger interface {
	Info(message string, fields ...Field)
	Error(message string, fields ...Field)
	Warn(message string, fields ...Field)
	Debug(message string, fields ...Field)
	Success(message string, fields ...Field)
	WithPlugin(name string) Logger
}

// Field is a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// WithField creates a new field.
func WithField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// pluginLogger implements Logger on top of logrus, tagging every entry
// with the plugin it concerns.
type pluginLogger struct {
	logger *logrus.Logger
	plugin string
}

// formatter renders compact single-line entries for terminal output.
type formatter struct {
	DisableColors bool
}

// Format implements logrus.Formatter.
func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelColor *color.Color
	var levelText string

	switch entry.Level {
	case logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
		levelText = "ERROR"
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
		levelText = "WARN"
	case logrus.DebugLevel:
		levelColor = color.New(color.FgWhite, color.Faint)
		levelText = "DEBUG"
	default:
		levelColor = color.New(color.FgCyan)
		levelText = "INFO"
	}

	pluginPrefix := ""
	if plugin, ok := entry.Data["plugin"]; ok {
		if f.DisableColors {
			pluginPrefix = fmt.Sprintf("[%s] ", plugin)
		} else {
			pluginPrefix = fmt.Sprintf("[%s] ", color.New(color.FgBlue).Sprint(plugin))
		}
		delete(entry.Data, "plugin")
	}

	var out strings.Builder
	if f.DisableColors {
		fmt.Fprintf(&out, "%s: %s%s", levelText, pluginPrefix, entry.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s%s", levelColor.Sprint(levelText), pluginPrefix, entry.Message)
	}

	if len(entry.Data) > 0 {
		fields := make([]string, 0, len(entry.Data))
		for k, v := range entry.Data {
			fields = append(fields, fmt.Sprintf("%s=%v", k, v))
		}
		out.WriteString(" {" + strings.Join(fields, ", ") + "}")
	}
	out.WriteByte('\n')

	return []byte(out.String()), nil
}

// New creates a logger writing to stderr at the given level.
func New(logLevel string) Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&formatter{})

	return &pluginLogger{logger: log}
}

// NewWithOutput creates a logger with a custom output, used by tests.
func NewWithOutput(logLevel string, output io.Writer) Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&formatter{DisableColors: true})
	log.SetOutput(output)

	return &pluginLogger{logger: log}
}

// WithPlugin returns a logger whose entries carry the plugin name.
func (l *pluginLogger) WithPlugin(name string) Logger {
	return &pluginLogger{
		logger: l.logger,
		plugin: name,
	}
}

func (l *pluginLogger) convertFields(fields []Field) logrus.Fields {
	result := make(logrus.Fields)
	if l.plugin != "" {
		result["plugin"] = l.plugin
	}
	for _, f := range fields {
		result[f.Key] = f.Value
	}
	return result
}

// Info logs an info message.
func (l *pluginLogger) Info(message string, fields ...Field) {
	l.logger.WithFields(l.convertFields(fields)).Info(message)
}

// Error logs an error message.
func (l *pluginLogger) Error(message string, fields ...Field) {
	l.logger.WithFields(l.convertFields(fields)).Error(message)
}

// Warn logs a warning message.
func (l *pluginLogger) Warn(message string, fields ...Field) {
	l.logger.WithFields(l.convertFields(fields)).Warn(message)
}

// Debug logs a debug message.
func (l *pluginLogger) Debug(message string, fields ...Field) {
	l.logger.WithFields(l.convertFields(fields)).Debug(message)
}

// Success logs a success message at info level.
func (l *pluginLogger) Success(message string, fields ...Field) {
	l.logger.WithFields(l.convertFields(fields)).Info("✓ " + message)
}
