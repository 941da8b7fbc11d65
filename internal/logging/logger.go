// Package logging provides the Printf-style logger shared by the suites.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
)

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(message string, args ...interface{})
}

type discard struct{}

func (discard) Printf(string, ...interface{}) {}

// NullLogger discards everything.
func NullLogger() Logger { return discard{} }

// Default returns the standard library's default logger.
func Default() Logger { return log.Default() }

// OrDefault returns l, or the default logger when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}

type prefixed struct {
	next   Logger
	prefix string
}

func (p prefixed) Printf(message string, args ...interface{}) {
	p.next.Printf("%s%s", p.prefix, fmt.Sprintf(message, args...))
}

// Prefixed tags every message with prefix before handing it to l.
func Prefixed(l Logger, prefix string) Logger {
	return prefixed{next: OrDefault(l), prefix: prefix}
}

// Entry is one buffered line.
type Entry struct {
	At   time.Time
	Text string
}

// Buffer holds a run's log lines so they can be shown only when the run
// fails. The zero value is ready to use and safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

func (b *Buffer) Printf(message string, args ...interface{}) {
	e := Entry{At: time.Now(), Text: fmt.Sprintf(message, args...)}
	b.mu.Lock()
	b.entries = append(b.entries, e)
	b.mu.Unlock()
}

// Entries returns a copy of the lines held so far.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Entry(nil), b.entries...)
}

// Contains reports whether any held line contains substr.
func (b *Buffer) Contains(substr string) bool {
	for _, e := range b.Entries() {
		if strings.Contains(e.Text, substr) {
			return true
		}
	}
	return false
}

// Flush writes every held line to dest as "<indent>DEBUG 15:04:05.000 text"
// and empties the buffer.
func (b *Buffer) Flush(dest io.Writer, indent string) error {
	b.mu.Lock()
	entries := b.entries
	b.entries = nil
	b.mu.Unlock()

	for _, e := range entries {
		if _, err := fmt.Fprintf(dest, "%sDEBUG %s %s\n", indent, e.At.Format("15:04:05.000"), e.Text); err != nil {
			return err
		}
	}
	return nil
}
