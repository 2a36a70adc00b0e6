// Package auditlog provides a fluent, best-effort record of print runs.
//
// hgrep renders many files per invocation; auditlog keeps a small SQLite
// history of each run (paths printed, chunk counts, duration, failures) so
// `hgrep stats` and debugging have something to look at after the fact.
// Logging failures never interrupt rendering: Open returns an error so the
// caller can warn once, but a nil logger makes every other call a no-op.
package auditlog

import (
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record for one printer invocation.
type Entry struct {
	Printer string // "syntect" or "bat"
	Files   int    // number of files rendered
	Chunks  int    // total chunks rendered across files
	Matches int    // total matches rendered across files

	Start int64
	End   int64

	Success bool
	Error   string
}

// Builder constructs an Entry using a fluent API, mirroring the shape of
// hgrep's other event-style builders.
type Builder struct {
	entry Entry
}

// Run starts a new audit entry for a printer invocation.
func Run(printer string) *Builder {
	return &Builder{entry: Entry{Printer: printer, Start: time.Now().Unix()}}
}

// Files records how many files were rendered.
func (b *Builder) Files(n int) *Builder {
	b.entry.Files = n
	return b
}

// Chunks records how many chunks were rendered.
func (b *Builder) Chunks(n int) *Builder {
	b.entry.Chunks += n
	return b
}

// Matches records how many matches were rendered.
func (b *Builder) Matches(n int) *Builder {
	b.entry.Matches += n
	return b
}

// Write finalises and persists the entry, deriving success from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers should treat audit logging as best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return nil
	}
	l, err := open(dbPath())
	if err != nil {
		return err
	}
	global = l
	return nil
}

// Log writes an entry. Safe to call if the logger was never opened (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.close()
		global = nil
	}
}

// Recent returns the most recent n entries, newest first. Used by
// `hgrep stats`. Returns an empty slice (not an error) if the logger was
// never opened.
func Recent(n int) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return nil, nil
	}
	return l.recent(n)
}
