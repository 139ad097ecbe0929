// Package logging provides the leveled logger shared by all Grab components.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes timestamped, leveled lines to an output writer and an
// optional log file. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	debug bool
	out   io.Writer
	file  *os.File
}

// New creates a logger writing to stdout. Debug lines are emitted only when
// debug is true.
func New(debug bool) *Logger {
	return &Logger{debug: debug, out: os.Stdout}
}

// NewWithOutput creates a logger writing to w instead of stdout.
func NewWithOutput(w io.Writer, debug bool) *Logger {
	return &Logger{debug: debug, out: w}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{out: io.Discard}
}

// SetFile mirrors log output into the given file, creating parent
// directories as needed. Any previously opened file is closed.
func (l *Logger) SetFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l.file = file
	return nil
}

// Debug logs a debug message when debug logging is enabled.
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.debug {
		l.log("DEBUG", format, v...)
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log("INFO", format, v...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log("WARN", format, v...)
}

// Error logs an error.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log("ERROR", format, v...)
}

func (l *Logger) log(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] [%s] %s\n", timestamp, level, fmt.Sprintf(format, v...))

	fmt.Fprint(l.out, line)
	if l.file != nil {
		fmt.Fprint(l.file, line)
	}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
