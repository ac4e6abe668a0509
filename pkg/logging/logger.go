package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// NewJSONLogger creates a new JSON logger writing to the given writer
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		writer: writer,
		level:  level,
		fields: make([]Field, 0),
	}
}

// NewDefaultLogger creates a logger that writes to stdout at INFO level
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stdout, InfoLevel)
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fieldMap := make(map[string]any)
	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}
	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	entry := LogEntry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if len(fieldMap) > 0 {
		entry.Fields = fieldMap
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Fall back to plain text if a field value won't marshal
		fmt.Fprintf(l.writer, "[ERROR] Failed to marshal log entry: %v\n", err)
		return
	}

	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// Debug logs a debug-level message
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		writer: l.writer,
		level:  l.level,
		fields: newFields,
	}
}

// SetLevel sets the minimum log level
func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

var (
	defaultLogger Logger
	once          sync.Once
)

// DefaultLogger returns the process-wide default logger. The initial level
// honors the LOG_LEVEL environment variable.
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultLogger = NewJSONLogger(os.Stdout, level)
	})
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide default logger
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}
