// Package mcp provides an MCP (Model Context Protocol) server adapter for Bahith.
// It lets AI assistants run role-scoped searches across the school backend.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingSettingsService is returned when the settings service is not provided.
var ErrMissingSettingsService = errors.New("mcp: settings service is required")
