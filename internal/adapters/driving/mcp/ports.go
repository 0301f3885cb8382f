package mcp

import (
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides the role-scoped universal search.
	Search driving.SearchService

	// Settings supplies the role, session, and selected academic year.
	Settings driving.SettingsService

	// History remembers executed queries. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	// History is optional; searches simply go unrecorded.
	return nil
}
