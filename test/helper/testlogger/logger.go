// Package testlogger provides a recording log.Logger for tests
package testlogger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
)

// LogEntry represents a single log entry
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
}

type sink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// TestLogger implements log.Logger and records every entry.
// Loggers derived through WithFields share the parent's entries.
type TestLogger struct {
	sink   *sink
	fields []any
}

// New creates a new TestLogger
func New() *TestLogger {
	return &TestLogger{sink: &sink{}}
}

// Discard creates a TestLogger that keeps nothing, for tests that never
// inspect the log.
func Discard() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) record(level, msg string) {
	if l.sink == nil {
		return
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	l.sink.entries = append(l.sink.entries, LogEntry{
		Level:   level,
		Message: strings.TrimSuffix(msg, "\n"),
		Fields:  l.fields,
	})
}

func (l *TestLogger) Debug(args ...any) { l.record("DEBUG", fmt.Sprint(args...)) }
func (l *TestLogger) Debugf(format string, args ...any) {
	l.record("DEBUG", fmt.Sprintf(format, args...))
}
func (l *TestLogger) Debugln(args ...any) { l.record("DEBUG", fmt.Sprintln(args...)) }
func (l *TestLogger) Info(args ...any)    { l.record("INFO", fmt.Sprint(args...)) }
func (l *TestLogger) Infof(format string, args ...any) {
	l.record("INFO", fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infoln(args ...any) { l.record("INFO", fmt.Sprintln(args...)) }
func (l *TestLogger) Warn(args ...any)   { l.record("WARN", fmt.Sprint(args...)) }
func (l *TestLogger) Warnf(format string, args ...any) {
	l.record("WARN", fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnln(args ...any) { l.record("WARN", fmt.Sprintln(args...)) }
func (l *TestLogger) Error(args ...any)  { l.record("ERROR", fmt.Sprint(args...)) }
func (l *TestLogger) Errorf(format string, args ...any) {
	l.record("ERROR", fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorln(args ...any) { l.record("ERROR", fmt.Sprintln(args...)) }
func (l *TestLogger) Fatal(args ...any)   { l.record("FATAL", fmt.Sprint(args...)) }
func (l *TestLogger) Fatalf(format string, args ...any) {
	l.record("FATAL", fmt.Sprintf(format, args...))
}
func (l *TestLogger) Fatalln(args ...any) { l.record("FATAL", fmt.Sprintln(args...)) }

// WithFields implements log.Logger
func (l *TestLogger) WithFields(fields ...any) log.Logger {
	merged := append(append([]any{}, l.fields...), fields...)

	return &TestLogger{sink: l.sink, fields: merged}
}

// WithField implements log.Logger
func (l *TestLogger) WithField(key string, value any) log.Logger {
	return l.WithFields(key, value)
}

// WithDefaultMessageTemplate implements log.Logger
func (l *TestLogger) WithDefaultMessageTemplate(string) log.Logger {
	return l
}

// Sync implements log.Logger
func (l *TestLogger) Sync() error {
	return nil
}

// GetEntries returns all log entries
func (l *TestLogger) GetEntries() []LogEntry {
	if l.sink == nil {
		return nil
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	entries := make([]LogEntry, len(l.sink.entries))
	copy(entries, l.sink.entries)

	return entries
}

// Count returns the number of log entries for the given level
func (l *TestLogger) Count(level string) int {
	count := 0

	for _, entry := range l.GetEntries() {
		if entry.Level == level {
			count++
		}
	}

	return count
}

// Contains returns true if an entry at level contains all the given substrings
func (l *TestLogger) Contains(level string, substrings ...string) bool {
	for _, entry := range l.GetEntries() {
		if entry.Level != level {
			continue
		}

		allFound := true

		for _, s := range substrings {
			if !strings.Contains(entry.Message, s) {
				allFound = false
				break
			}
		}

		if allFound {
			return true
		}
	}

	return false
}
