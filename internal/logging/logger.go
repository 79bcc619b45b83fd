// Package logging wraps charmbracelet/log with level parsing and a
// process-wide default logger for the CLI. Library packages under pkg/
// stay silent; only commands log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ParseLevel maps a level name to a charmbracelet/log level. Unknown
// names fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New creates a logger writing to w at the given level. Timestamps and
// caller reporting are off; mdtool logs are human-facing status lines,
// not an audit trail.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

//nolint:gochecknoglobals // Package-level default logger is intentional for convenience
var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// Default returns the process-wide default logger, writing to stderr at
// info level.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr, "info")
	})
	return defaultLogger
}

// SetLevel updates the default logger's level.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
