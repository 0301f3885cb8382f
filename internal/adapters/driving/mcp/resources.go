package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Bahith resources.
	uriScheme = "bahith://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the current settings.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "The configured role, session, and academic year",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	// Static resource for the configured role's permitted scopes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "scopes",
		Name:        "scopes",
		Description: "Entity scopes the configured role may search",
		MIMEType:    "application/json",
	}, s.handleScopesResource)

	// Template for inspecting another role's permitted scopes.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "roles/{role}/scopes",
		Name:        "role-scopes",
		Description: "Entity scopes a specific role may search",
		MIMEType:    "application/json",
	}, s.handleRoleScopesResource)
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := s.ports.Settings.Current()

	type settingsInfo struct {
		Role           string `json:"role"`
		Session        string `json:"session"`
		AcademicYearID int64  `json:"academic_year_id"`
		BaseURL        string `json:"base_url"`
	}

	data, err := json.MarshalIndent(settingsInfo{
		Role:           string(settings.Role),
		Session:        string(settings.Session),
		AcademicYearID: settings.AcademicYearID,
		BaseURL:        settings.BaseURL,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleScopesResource returns the configured role's permitted scopes.
func (s *Server) handleScopesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	role := s.ports.Settings.Current().Role
	return scopesResult(req.Params.URI, role)
}

// handleRoleScopesResource returns a named role's permitted scopes.
func (s *Server) handleRoleScopesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	role := extractRole(req.Params.URI)
	if role == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return scopesResult(req.Params.URI, domain.Role(role))
}

// scopesResult renders a role's scope table as a JSON resource.
func scopesResult(uri string, role domain.Role) (*mcp.ReadResourceResult, error) {
	type scopeInfo struct {
		Scope string `json:"scope"`
		Label string `json:"label"`
	}

	scopes := domain.AllowedScopes(role)
	infos := make([]scopeInfo, len(scopes))
	for i, scope := range scopes {
		infos[i] = scopeInfo{
			Scope: string(scope),
			Label: scope.Label(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling scopes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRole extracts the role from a URI like bahith://roles/{role}/scopes.
func extractRole(uri string) string {
	const prefix = uriScheme + "roles/"
	const suffix = "/scopes"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
