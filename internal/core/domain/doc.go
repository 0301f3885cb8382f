// Package domain defines the core business entities for Bahith.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: A single typed hit from the universal search
//   - Filters / SearchContext: The inputs that scope a search
//   - Scope / Role: The visibility model gating each lookup
//   - GroupedResults: Category-grouped results with reveal windows
//   - Page: A static application page searchable by title and keywords
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
