// Package runtime provides the logging and file watching used while
// scriptgrant runs.
package runtime

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Logger defines the structured logging interface used by stages and plugins.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Debug(msg string, fields map[string]any)
}

// JSONLogger writes one JSON object per line to an io.Writer.
type JSONLogger struct {
	mu      *sync.Mutex
	w       io.Writer
	verbose bool
	base    map[string]any
}

// NewJSONLogger creates a JSONLogger writing to w. Debug entries are only
// emitted when verbose is true.
func NewJSONLogger(w io.Writer, verbose bool) *JSONLogger {
	return &JSONLogger{mu: &sync.Mutex{}, w: w, verbose: verbose}
}

// With returns a logger that adds fields to every entry. It shares the
// writer and lock of l.
func (l *JSONLogger) With(fields map[string]any) *JSONLogger {
	base := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		base[k] = v
	}
	for k, v := range fields {
		base[k] = v
	}
	return &JSONLogger{mu: l.mu, w: l.w, verbose: l.verbose, base: base}
}

func (l *JSONLogger) Info(msg string, fields map[string]any)  { l.log("info", msg, fields) }
func (l *JSONLogger) Warn(msg string, fields map[string]any)  { l.log("warn", msg, fields) }
func (l *JSONLogger) Error(msg string, fields map[string]any) { l.log("error", msg, fields) }

func (l *JSONLogger) Debug(msg string, fields map[string]any) {
	if !l.verbose {
		return
	}
	l.log("debug", msg, fields)
}

func (l *JSONLogger) log(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(l.base)+len(fields)+3)
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg

	l.mu.Lock()
	defer l.mu.Unlock()
	data, _ := json.Marshal(entry)
	data = append(data, '\n')
	l.w.Write(data) //nolint:errcheck
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(string, map[string]any)  {}
func (NopLogger) Warn(string, map[string]any)  {}
func (NopLogger) Error(string, map[string]any) {}
func (NopLogger) Debug(string, map[string]any) {}
