package ingest

import "fmt"

// Log accumulates human-readable diagnostics for one harvest run. It is
// append-only; callers report it and throw it away.
type Log struct {
	entries []string
}

// Addf appends a formatted diagnostic entry.
func (l *Log) Addf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Entries returns the accumulated diagnostics in append order.
func (l *Log) Entries() []string {
	return l.entries
}

// Len reports the number of diagnostics collected so far.
func (l *Log) Len() int {
	return len(l.entries)
}
