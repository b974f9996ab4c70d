package headers

import (
	"log/slog"
	"sync"
)

// LogBackend provides a pluggable logging interface compatible with slog.
// Users can implement this interface to integrate their preferred logging solution.
// The interface matches slog.Logger method signatures for easy wrapping.
//
// Users control the log level cutoff by configuring their logger implementation.
// For example, when wrapping slog.Logger, set the level in the handler:
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
//	logger := slog.New(handler)
//
// If no LogBackend is provided, a no-op logger is used by default.
type LogBackend interface {
	// Debug logs a message at Debug level with optional key-value pairs
	Debug(msg string, args ...any)

	// Info logs a message at Info level with optional key-value pairs
	Info(msg string, args ...any)

	// Warn logs a message at Warn level with optional key-value pairs
	Warn(msg string, args ...any)

	// Error logs a message at Error level with optional key-value pairs
	Error(msg string, args ...any)
}

// noopLogger is a no-op implementation of LogBackend used when no logger is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(_ string, _ ...any) {}
func (n *noopLogger) Info(_ string, _ ...any)  {}
func (n *noopLogger) Warn(_ string, _ ...any)  {}
func (n *noopLogger) Error(_ string, _ ...any) {}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   slog.Level
	Message string
	Args    []any
}

// TestLogger is a LogBackend that records every call so tests can assert
// on what was logged. Safe for concurrent use.
type TestLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewTestLogger returns an empty TestLogger.
func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) record(level slog.Level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Args: args})
}

func (l *TestLogger) Debug(msg string, args ...any) { l.record(slog.LevelDebug, msg, args) }
func (l *TestLogger) Info(msg string, args ...any)  { l.record(slog.LevelInfo, msg, args) }
func (l *TestLogger) Warn(msg string, args ...any)  { l.record(slog.LevelWarn, msg, args) }
func (l *TestLogger) Error(msg string, args ...any) { l.record(slog.LevelError, msg, args) }

// Count returns the number of entries not yet consumed by Next.
func (l *TestLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Next pops the oldest recorded entry, or nil when none remain.
func (l *TestLogger) Next() *LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	e := l.entries[0]
	l.entries = l.entries[1:]
	return &e
}

// HasLevel reports whether any remaining entry was logged at level.
func (l *TestLogger) HasLevel(level slog.Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Level == level {
			return true
		}
	}
	return false
}
