package mcp

import (
	"context"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	outcome    *domain.Outcome
	err        error
	gotQuery   string
	gotFilters domain.Filters
	gotContext domain.SearchContext
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	filters domain.Filters,
	sc domain.SearchContext,
) (*domain.Outcome, error) {
	m.gotQuery = query
	m.gotFilters = filters
	m.gotContext = sc
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome != nil {
		return m.outcome, nil
	}
	return domain.EmptyOutcome(), nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings driving.Settings
}

func (m *mockSettingsService) Current() driving.Settings           { return m.settings }
func (m *mockSettingsService) SetRole(domain.Role) error           { return nil }
func (m *mockSettingsService) SetSession(domain.SessionType) error { return nil }
func (m *mockSettingsService) SetAcademicYear(int64) error         { return nil }
func (m *mockSettingsService) SetBaseURL(string) error             { return nil }
func (m *mockSettingsService) Reload() error                       { return nil }

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	recorded []string
}

func (m *mockHistoryService) Record(_ context.Context, query string, _ int) error {
	m.recorded = append(m.recorded, query)
	return nil
}

func (m *mockHistoryService) Recent(context.Context, int) ([]driven.HistoryEntry, error) {
	return nil, nil
}

func (m *mockHistoryService) Clear(context.Context) error { return nil }
