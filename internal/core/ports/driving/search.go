package driving

import (
	"context"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// SearchService aggregates role-scoped searches across every permitted
// category and returns grouped, deduplicated results.
type SearchService interface {
	// Search fans out to the backend for each scope the role and filters
	// permit and groups the merged results. An empty query performs no
	// lookups. The error is non-nil only on context cancellation; every
	// lookup failure degrades to fewer results instead.
	Search(ctx context.Context, query string, filters domain.Filters, sc domain.SearchContext) (*domain.Outcome, error)
}
