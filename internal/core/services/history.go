package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultRecentLimit is how many entries Recent returns when the caller
// passes a non-positive limit.
const DefaultRecentLimit = 10

// HistoryService records executed queries so the search bar can offer them
// back. Only query text and counts are kept; results are never cached.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service over a history store.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record implements driving.HistoryService. Blank queries are rejected:
// only searches that actually executed belong in history.
func (h *HistoryService) Record(ctx context.Context, query string, resultCount int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("refusing to record blank query: %w", domain.ErrInvalidInput)
	}
	return h.store.Record(ctx, driven.HistoryEntry{
		ID:          uuid.NewString(),
		Query:       query,
		ResultCount: resultCount,
		ExecutedAt:  time.Now().UTC(),
	})
}

// Recent implements driving.HistoryService.
func (h *HistoryService) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return h.store.Recent(ctx, limit)
}

// Clear implements driving.HistoryService.
func (h *HistoryService) Clear(ctx context.Context) error {
	return h.store.Clear(ctx)
}
