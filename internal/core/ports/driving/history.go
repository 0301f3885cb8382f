package driving

import (
	"context"

	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
)

// HistoryService exposes the recent-query history.
type HistoryService interface {
	// Record remembers an executed query and its result count.
	Record(ctx context.Context, query string, resultCount int) error

	// Recent returns the most recent queries, newest first.
	Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error)

	// Clear forgets all recorded queries.
	Clear(ctx context.Context) error
}
