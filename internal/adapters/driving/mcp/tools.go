package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query           string   `json:"query" jsonschema:"the search query, matched against names, titles, and descriptions"`
	Scopes          []string `json:"scopes,omitempty" jsonschema:"restrict to these entity scopes (students, teachers, classes, schedules, activities, director_notes, finance, academic_years, pages); empty means every scope the role permits"`
	Session         string   `json:"session,omitempty" jsonschema:"restrict to one session: morning or evening"`
	IncludeInactive bool     `json:"include_inactive,omitempty" jsonschema:"also return withdrawn students and former teachers"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Groups              []GroupOutput `json:"groups"`
	TotalResults        int           `json:"total_results"`
	SearchTimeMs        int64         `json:"search_time_ms"`
	ConnectivityFailure bool          `json:"connectivity_failure"`
}

// GroupOutput is one display category of search results.
type GroupOutput struct {
	Category string               `json:"category"`
	Results  []SearchResultOutput `json:"results"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Type      string   `json:"type"`
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Score     float64  `json:"score"`
	Tags      []string `json:"tags,omitempty"`
	Clickable bool     `json:"is_clickable"`
}

// ListScopesInput is the input schema for the list_scopes tool.
type ListScopesInput struct {
	Role string `json:"role,omitempty" jsonschema:"role to inspect; defaults to the configured role"`
}

// ListScopesOutput is the output schema for the list_scopes tool.
type ListScopesOutput struct {
	Role   string        `json:"role"`
	Scopes []ScopeOutput `json:"scopes"`
}

// ScopeOutput is one permitted scope with its display label.
type ScopeOutput struct {
	Scope string `json:"scope"`
	Label string `json:"label"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the school system across every category the configured role permits",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_scopes",
		Description: "List the entity scopes a role is permitted to search",
	}, s.handleListScopes)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filters := domain.Filters{
		IncludeInactive: input.IncludeInactive,
	}

	switch input.Session {
	case "":
		filters.Session = domain.SessionAll
	case string(domain.SessionMorning):
		filters.Session = domain.SessionMorning
	case string(domain.SessionEvening):
		filters.Session = domain.SessionEvening
	default:
		return nil, SearchOutput{}, fmt.Errorf("unknown session %q", input.Session)
	}

	for _, raw := range input.Scopes {
		scope := domain.Scope(raw)
		if !scope.Valid() {
			return nil, SearchOutput{}, fmt.Errorf("unknown scope %q", raw)
		}
		filters.Scopes = append(filters.Scopes, scope)
	}

	sc := s.ports.Settings.Current().SearchContext()
	outcome, err := s.ports.Search.Search(ctx, input.Query, filters, sc)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	if s.ports.History != nil {
		//nolint:errcheck // history is best effort
		_ = s.ports.History.Record(ctx, input.Query, outcome.TotalResults)
	}

	output := SearchOutput{
		Groups:              make([]GroupOutput, 0, len(outcome.Groups.Groups)),
		TotalResults:        outcome.TotalResults,
		SearchTimeMs:        outcome.SearchTimeMs(),
		ConnectivityFailure: outcome.ConnectivityFailure,
	}

	for _, g := range outcome.Groups.Groups {
		group := GroupOutput{
			Category: g.Category,
			Results:  make([]SearchResultOutput, len(g.Results)),
		}
		for i := range g.Results {
			r := &g.Results[i]
			group.Results[i] = SearchResultOutput{
				Type:      string(r.Type),
				ID:        r.ID,
				Title:     r.Title,
				Subtitle:  r.Subtitle,
				Score:     r.Score,
				Tags:      r.Tags,
				Clickable: r.Clickable,
			}
		}
		output.Groups = append(output.Groups, group)
	}

	return nil, output, nil
}

// handleListScopes handles the list_scopes tool invocation.
func (s *Server) handleListScopes(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListScopesInput,
) (*mcp.CallToolResult, ListScopesOutput, error) {
	role := domain.Role(input.Role)
	if role == "" {
		role = s.ports.Settings.Current().Role
	}

	scopes := domain.AllowedScopes(role)
	output := ListScopesOutput{
		Role:   string(role),
		Scopes: make([]ScopeOutput, len(scopes)),
	}
	for i, scope := range scopes {
		output.Scopes[i] = ScopeOutput{
			Scope: string(scope),
			Label: scope.Label(),
		}
	}

	return nil, output, nil
}
