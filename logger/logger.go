// Package logger writes the application log. Each process run gets its own
// file under the data directory, named by date plus a run counter, so logs
// from overlapping runs never interleave.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const filePrefix = "slidesmith"

// Logger appends timestamped lines to the current run's log file. All
// methods are safe before Init; they simply drop output until a file is
// attached.
type Logger struct {
	mu  sync.Mutex
	out *os.File
}

// NewLogger returns a detached logger. Call Init once the data directory
// is known.
func NewLogger() *Logger {
	return &Logger{}
}

// nextRunPath picks the first unused run number for today's date.
func nextRunPath(dir string) string {
	date := time.Now().Format("2006-01-02")
	existing, _ := filepath.Glob(filepath.Join(dir, fmt.Sprintf("%s_%s_*.log", filePrefix, date)))
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%d.log", filePrefix, date, len(existing)+1))
}

// Init attaches the logger to a fresh file in dir, replacing any file a
// previous Init opened.
func (l *Logger) Init(dir string) error {
	f, err := os.OpenFile(nextRunPath(dir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out != nil {
		l.out.Close()
	}
	l.out = f
	l.write("App Started")
	return nil
}

// Log writes one timestamped line.
func (l *Logger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(message)
}

// Logf formats and writes one timestamped line.
func (l *Logger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(fmt.Sprintf(format, args...))
}

// Section writes a divider naming a unit of work, so each export's lines
// read as one block in the file.
func (l *Logger) Section(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("======== " + name + " ========")
}

// write appends a line; caller holds the mutex.
func (l *Logger) write(message string) {
	if l.out == nil {
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", time.Now().Format("15:04:05.000"), message)
}

// Close detaches and closes the current file. Safe to call twice.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return
	}
	l.write("App Stopped")
	l.out.Close()
	l.out = nil
}
