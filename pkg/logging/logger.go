package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		writer: writer,
		level:  level,
		fields: make([]Field, 0),
		mu:     &sync.Mutex{},
	}
}

// New creates a logger for the given format ("json" or "console").
// Unknown formats fall back to JSON.
func New(format string, writer io.Writer, level Level) Logger {
	if strings.EqualFold(format, "console") {
		return NewConsoleLogger(writer, level)
	}
	return NewJSONLogger(writer, level)
}

// log is the internal logging method
func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.GetLevel() {
		return
	}

	fieldMap := make(map[string]any, len(l.fields)+len(fields))
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

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] Failed to marshal log entry: %v\n", err)
		return
	}
	l.writer.Write(append(data, '\n'))
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
	return &JSONLogger{
		writer: l.writer,
		level:  l.GetLevel(),
		fields: appendFields(l.fields, fields),
		mu:     l.mu,
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

func appendFields(base, extra []Field) []Field {
	out := make([]Field, len(base)+len(extra))
	copy(out, base)
	copy(out[len(base):], extra)
	return out
}

// Level colors for console output
var levelColors = map[Level]lipgloss.Color{
	DebugLevel: lipgloss.Color("#7D7D7D"),
	InfoLevel:  lipgloss.Color("#04B575"),
	WarnLevel:  lipgloss.Color("#FFB000"),
	ErrorLevel: lipgloss.Color("#FF4672"),
}

// NewConsoleLogger creates a logger that writes colored key=value lines.
// Colors are dropped automatically when writer is not a terminal.
func NewConsoleLogger(writer io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer: writer,
		level:  level,
		fields: make([]Field, 0),
		mu:     &sync.Mutex{},
	}
}

func (l *ConsoleLogger) log(level Level, msg string, fields ...Field) {
	if level < l.GetLevel() {
		return
	}

	r := lipgloss.NewRenderer(l.writer)
	levelStyle := r.NewStyle().Foreground(levelColors[level]).Bold(true).Width(6)
	keyStyle := r.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(levelStyle.Render(level.String()))
	b.WriteString(msg)
	for _, f := range appendFields(l.fields, fields) {
		b.WriteByte(' ')
		b.WriteString(keyStyle.Render(f.Key + "="))
		fmt.Fprintf(&b, "%v", f.Value)
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.writer, b.String())
}

// Debug logs a debug-level message
func (l *ConsoleLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *ConsoleLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *ConsoleLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *ConsoleLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set
func (l *ConsoleLogger) With(fields ...Field) Logger {
	return &ConsoleLogger{
		writer: l.writer,
		level:  l.GetLevel(),
		fields: appendFields(l.fields, fields),
		mu:     l.mu,
	}
}

// SetLevel sets the minimum log level
func (l *ConsoleLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *ConsoleLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Global default logger. Results go to stdout, so logs default to stderr.
var (
	defaultLogger Logger
	defaultMu     sync.Mutex
)

// DefaultLogger returns the global default logger
func DefaultLogger() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		level := InfoLevel
		if levelStr := os.Getenv("COMMUNITIES_LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultLogger = NewJSONLogger(os.Stderr, level)
	}
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Debug logs a debug-level message using the default logger
func Debug(msg string, fields ...Field) {
	DefaultLogger().Debug(msg, fields...)
}

// Info logs an info-level message using the default logger
func Info(msg string, fields ...Field) {
	DefaultLogger().Info(msg, fields...)
}

// Warn logs a warning-level message using the default logger
func Warn(msg string, fields ...Field) {
	DefaultLogger().Warn(msg, fields...)
}

// ErrorLog logs an error-level message using the default logger
// Named ErrorLog to avoid conflict with Error field constructor
func ErrorLog(msg string, fields ...Field) {
	DefaultLogger().Error(msg, fields...)
}

// With creates a child logger with the given fields pre-set using the default logger
func With(fields ...Field) Logger {
	return DefaultLogger().With(fields...)
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started.
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation at info level with its duration and any result
// fields.
func (t *TimedOperation) End(fields ...Field) {
	t.EndWithLevel(InfoLevel, fields...)
}

// EndWithLevel logs the operation at the specified level with its duration
func (t *TimedOperation) EndWithLevel(level Level, fields ...Field) {
	all := append(appendFields(t.fields, fields), Latency(t.Elapsed()))
	switch level {
	case DebugLevel:
		t.logger.Debug(t.msg, all...)
	case InfoLevel:
		t.logger.Info(t.msg, all...)
	case WarnLevel:
		t.logger.Warn(t.msg, all...)
	case ErrorLevel:
		t.logger.Error(t.msg, all...)
	}
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) {
	t.logger.Error(t.msg, append(appendFields(t.fields, nil), Latency(t.Elapsed()), Error(err))...)
}
