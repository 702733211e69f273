// Package logger writes timestamped diagnostic lines and keeps the most
// recent ones in memory so viewers can show them.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultCapacity is how many lines are kept in memory
const DefaultCapacity = 200

// Logger stores recent lines and mirrors them to an output writer
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	lines    []string
	capacity int
	now      func() time.Time
}

// New returns a logger writing to out. A nil out keeps lines in memory only.
func New(out io.Writer) *Logger {
	return &Logger{out: out, capacity: DefaultCapacity, now: time.Now}
}

// Stdout returns a logger writing to standard output
func Stdout() *Logger {
	return New(os.Stdout)
}

// Discard returns a logger that only keeps lines in memory
func Discard() *Logger {
	return New(nil)
}

// Printf formats and records one line. Each line is prefixed with a
// [timestamp] in local time.
func (l *Logger) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	stamped := "[" + l.now().Format("15:04:05") + "] " + line

	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - l.capacity; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	if l.out != nil {
		_, _ = fmt.Fprintln(l.out, stamped)
	}
}

// Lines returns a copy of the stored lines, oldest first
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Last returns the most recent line, or "" when nothing was logged
func (l *Logger) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}
