// Package logger provides diagnostic logging for gee.
// Diagnostics go to stderr and stay silent unless the --verbose flag raises
// the level, so they never mix with the progress output of commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a logging threshold.
type Level int

// Available levels, from quietest to noisiest.
const (
	LevelWarn Level = iota
	LevelInfo
	LevelDebug
)

var (
	mu     sync.RWMutex
	level            = LevelWarn
	output io.Writer = os.Stderr
)

// SetLevel sets the logging threshold.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetVerbose switches between debug output and warnings only.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// IsVerbose returns true if debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return level >= LevelDebug
}

// SetOutput sets the writer for log lines.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, tag, scope, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l > level {
		return
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(tag)
	b.WriteString("] ")
	if scope != "" {
		b.WriteString(scope)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, args...)
	b.WriteString("\n")
	_, _ = io.WriteString(output, b.String())
}

// Debug logs a diagnostic message.
func Debug(format string, args ...any) { logf(LevelDebug, "DEBUG", "", format, args...) }

// Info logs an informational message.
func Info(format string, args ...any) { logf(LevelInfo, "INFO", "", format, args...) }

// Warn logs a warning. Warnings are printed at every level.
func Warn(format string, args ...any) { logf(LevelWarn, "WARN", "", format, args...) }

// Scoped prefixes every message with a component name.
type Scoped struct {
	name string
}

// Scope returns a logger tagging messages with name.
func Scope(name string) Scoped {
	return Scoped{name: name}
}

// Debug logs a diagnostic message.
func (s Scoped) Debug(format string, args ...any) { logf(LevelDebug, "DEBUG", s.name, format, args...) }

// Info logs an informational message.
func (s Scoped) Info(format string, args ...any) { logf(LevelInfo, "INFO", s.name, format, args...) }

// Warn logs a warning.
func (s Scoped) Warn(format string, args ...any) { logf(LevelWarn, "WARN", s.name, format, args...) }
