package cli

import (
	"context"
	"time"

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
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	filters domain.Filters,
	_ domain.SearchContext,
) (*domain.Outcome, error) {
	m.gotQuery = query
	m.gotFilters = filters
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
	settings   driving.Settings
	setRoleErr error
	gotRole    domain.Role
	gotSession domain.SessionType
	gotYear    int64
	gotURL     string
}

func (m *mockSettingsService) Current() driving.Settings { return m.settings }

func (m *mockSettingsService) SetRole(role domain.Role) error {
	m.gotRole = role
	return m.setRoleErr
}

func (m *mockSettingsService) SetSession(session domain.SessionType) error {
	m.gotSession = session
	return nil
}

func (m *mockSettingsService) SetAcademicYear(id int64) error {
	m.gotYear = id
	return nil
}

func (m *mockSettingsService) SetBaseURL(url string) error {
	m.gotURL = url
	return nil
}

func (m *mockSettingsService) Reload() error { return nil }

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	entries  []driven.HistoryEntry
	recorded []string
	cleared  bool
}

func (m *mockHistoryService) Record(_ context.Context, query string, _ int) error {
	m.recorded = append(m.recorded, query)
	return nil
}

func (m *mockHistoryService) Recent(context.Context, int) ([]driven.HistoryEntry, error) {
	return m.entries, nil
}

func (m *mockHistoryService) Clear(context.Context) error {
	m.cleared = true
	return nil
}

// setupTestServices swaps the package services for mocks and returns a
// cleanup that restores the previous wiring.
func setupTestServices() func() {
	prevSearch := searchService
	prevSettings := settingsService
	prevHistory := historyService

	searchService = &mockSearchService{}
	settingsService = &mockSettingsService{settings: driving.Settings{
		Role:           domain.RoleDirector,
		Session:        domain.SessionMorning,
		AcademicYearID: 7,
		BaseURL:        "http://localhost:8000",
	}}
	historyService = &mockHistoryService{
		entries: []driven.HistoryEntry{
			{ID: "1", Query: "أحمد", ResultCount: 3, ExecutedAt: time.Now()},
		},
	}

	return func() {
		searchService = prevSearch
		settingsService = prevSettings
		historyService = prevHistory
	}
}

// testOutcome builds a small grouped outcome for output tests.
func testOutcome() *domain.Outcome {
	groups := domain.NewGroupedResults([]domain.SearchResult{
		{
			Type:      domain.TypePage,
			ID:        "students",
			Title:     "صفحة الطلاب",
			Category:  "الصفحات",
			Score:     1.0,
			Clickable: true,
		},
		{
			Type:      domain.TypeStudent,
			ID:        "5",
			Title:     "أحمد خالد",
			Subtitle:  "الصف الثالث - أ",
			Category:  "الطلاب",
			Score:     0.9,
			Tags:      []string{"صباحي"},
			Clickable: true,
		},
	})
	return &domain.Outcome{
		Groups:       groups,
		TotalResults: 2,
		SearchTime:   30 * time.Millisecond,
	}
}
