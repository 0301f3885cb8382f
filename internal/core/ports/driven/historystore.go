package driven

import (
	"context"
	"time"
)

// HistoryEntry is one executed search remembered for recall.
type HistoryEntry struct {
	// ID is a unique identifier for the entry.
	ID string

	// Query is the executed query text.
	Query string

	// ResultCount is how many results the execution produced.
	ResultCount int

	// ExecutedAt is when the search ran.
	ExecutedAt time.Time
}

// HistoryStore persists recent search queries. Only query text and counts
// are stored; results themselves are never cached.
type HistoryStore interface {
	// Record stores one executed search.
	Record(ctx context.Context, entry HistoryEntry) error

	// Recent returns the most recent entries, newest first.
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
