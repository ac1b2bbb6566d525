// Package logging provides structured logging for the client. The TUI
// owns the terminal, so logs go to a file (or are discarded) rather
// than stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	clog "github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger = clog.New(io.Discard)
	file   *os.File
)

// Init configures the package logger. When path is empty, output is
// discarded; otherwise the file is created (with parent directories)
// and appended to. level is one of debug, info, warn, error.
func Init(level, path string) error {
	mu.Lock()
	defer mu.Unlock()

	out := io.Discard
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory %s: %w", dir, err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", path, err)
		}
		if file != nil {
			file.Close()
		}
		file = f
		out = f
	}

	l := clog.New(out)
	l.SetFormatter(clog.JSONFormatter)
	l.SetReportTimestamp(true)

	switch level {
	case "debug":
		l.SetLevel(clog.DebugLevel)
	case "warn":
		l.SetLevel(clog.WarnLevel)
	case "error":
		l.SetLevel(clog.ErrorLevel)
	default:
		l.SetLevel(clog.InfoLevel)
	}

	logger = l
	return nil
}

// Shutdown flushes and closes the log file, if any.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()

	logger = clog.New(io.Discard)
	if file != nil {
		err := file.Close()
		file = nil
		return err
	}
	return nil
}

// Debug logs a debug message with key-value pairs.
func Debug(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debug(msg, args...)
}

// Info logs an informational message with key-value pairs.
func Info(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Info(msg, args...)
}

// Warn logs a warning with key-value pairs.
func Warn(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Warn(msg, args...)
}

// Error logs an error with key-value pairs.
func Error(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Error(msg, args...)
}
