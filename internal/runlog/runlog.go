// Package runlog writes the per-run diagnostic log file. The console
// stays terse; the log file gets everything. A nil *Logger is valid and
// discards all writes, so callers never need to guard.
package runlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger appends timestamped lines to a log file.
type Logger struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// New creates (truncating) the log file at path.
func New(path string) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating run log: %w", err)
	}
	return &Logger{f: f, path: path}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Printf writes one timestamped line. Safe for concurrent use and safe on
// a nil logger.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, "%s %s\n", time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
