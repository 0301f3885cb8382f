package search

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/messages"
	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, filters domain.Filters, sc domain.SearchContext) (*domain.Outcome, error)
}

func (m *MockSearchService) Search(
	ctx context.Context,
	query string,
	filters domain.Filters,
	sc domain.SearchContext,
) (*domain.Outcome, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, filters, sc)
	}
	return domain.EmptyOutcome(), nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	settings driving.Settings
}

func (m *MockSettingsService) Current() driving.Settings           { return m.settings }
func (m *MockSettingsService) SetRole(domain.Role) error           { return nil }
func (m *MockSettingsService) SetSession(domain.SessionType) error { return nil }
func (m *MockSettingsService) SetAcademicYear(int64) error         { return nil }
func (m *MockSettingsService) SetBaseURL(string) error             { return nil }
func (m *MockSettingsService) Reload() error                       { return nil }

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	RecordFunc func(ctx context.Context, query string, resultCount int) error
}

func (m *MockHistoryService) Record(ctx context.Context, query string, resultCount int) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, query, resultCount)
	}
	return nil
}

func (m *MockHistoryService) Recent(context.Context, int) ([]driven.HistoryEntry, error) {
	return nil, nil
}

func (m *MockHistoryService) Clear(context.Context) error { return nil }

// testOutcome builds a grouped outcome with two student hits.
func testOutcome() *domain.Outcome {
	groups := domain.NewGroupedResults([]domain.SearchResult{
		{Type: domain.TypeStudent, ID: "1", Title: "أحمد خالد", Category: "الطلاب", Clickable: true},
		{Type: domain.TypeStudent, ID: "2", Title: "أحمد سمير", Category: "الطلاب", Clickable: true},
	})
	return &domain.Outcome{
		Groups:       groups,
		TotalResults: groups.Total(),
		SearchTime:   42 * time.Millisecond,
	}
}

func typeRune(v *View, r rune) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Query())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil, nil, nil)

	cmd := view.Init()

	// Blink command from input
	assert.NotNil(t, cmd)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil, nil, nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 40}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
}

func TestView_Typing_ArmsDebounce(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)

	cmd := typeRune(view, 'a')

	assert.Equal(t, "a", view.Query())
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(1), view.debounceSeq)
}

func TestView_Typing_EachKeystrokeBumpsSequence(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)

	typeRune(view, 'أ')
	typeRune(view, 'ح')
	typeRune(view, 'م')

	assert.Equal(t, "أحم", view.Query())
	assert.Equal(t, uint64(3), view.debounceSeq)
}

func TestView_DebounceElapsed_StaleTimerIgnored(t *testing.T) {
	searchCalled := false
	mock := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.Filters, domain.SearchContext) (*domain.Outcome, error) {
			searchCalled = true
			return domain.EmptyOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockSettingsService{}, nil)

	typeRune(view, 'a')
	typeRune(view, 'b')

	// The first keystroke's timer fires with an old sequence.
	_, cmd := view.Update(messages.DebounceElapsed{Seq: 1})

	assert.Nil(t, cmd)
	assert.False(t, searchCalled)
	assert.Equal(t, uint64(0), view.searchSeq)
}

func TestView_DebounceElapsed_CurrentTimerFiresSearch(t *testing.T) {
	var gotQuery string
	mock := &MockSearchService{
		SearchFunc: func(_ context.Context, query string, _ domain.Filters, _ domain.SearchContext) (*domain.Outcome, error) {
			gotQuery = query
			return testOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockSettingsService{}, nil)

	typeRune(view, 'a')
	typeRune(view, 'b')

	_, cmd := view.Update(messages.DebounceElapsed{Seq: view.debounceSeq})
	require.NotNil(t, cmd)

	result := cmd()
	completed, ok := result.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "ab", gotQuery)
	assert.Equal(t, view.searchSeq, completed.Seq)
}

func TestView_DebounceElapsed_EmptyQueryClears(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)

	typeRune(view, 'a')
	view.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	_, cmd := view.Update(messages.DebounceElapsed{Seq: view.debounceSeq})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, view.Groups().Total())
}

func TestView_SearchCompleted_RendersOutcome(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)
	view.searchSeq = 1

	view.Update(messages.SearchCompleted{Seq: 1, Outcome: testOutcome()})

	require.NotNil(t, view.Groups())
	assert.Equal(t, 2, view.Groups().Total())
	assert.NoError(t, view.Err())
}

func TestView_SearchCompleted_StaleResponseDiscarded(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)
	view.searchSeq = 2 // a newer search is already in flight

	view.Update(messages.SearchCompleted{Seq: 1, Outcome: testOutcome()})

	assert.Equal(t, 0, view.Groups().Total())
}

func TestView_SearchCompleted_LaterResponseWins(t *testing.T) {
	mock := &MockSearchService{
		SearchFunc: func(_ context.Context, query string, _ domain.Filters, _ domain.SearchContext) (*domain.Outcome, error) {
			if query == "a" {
				return domain.EmptyOutcome(), nil
			}
			return testOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)

	typeRune(view, 'a')
	_, cmd1 := view.Update(messages.DebounceElapsed{Seq: view.debounceSeq})
	require.NotNil(t, cmd1)

	typeRune(view, 'b')
	_, cmd2 := view.Update(messages.DebounceElapsed{Seq: view.debounceSeq})
	require.NotNil(t, cmd2)

	// Second search completes first; the first search's response arrives
	// late and must not overwrite it.
	second := cmd2().(messages.SearchCompleted)
	first := cmd1().(messages.SearchCompleted)

	view.Update(second)
	assert.Equal(t, 2, view.Groups().Total())

	view.Update(first)
	assert.Equal(t, 2, view.Groups().Total())
}

func TestView_SearchCompleted_WithError(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)
	view.searchSeq = 1

	view.Update(messages.SearchCompleted{Seq: 1, Err: errors.New("search failed")})

	assert.Error(t, view.Err())
}

func TestView_SearchCompleted_RecordsHistory(t *testing.T) {
	var gotQuery string
	var gotCount int
	hist := &MockHistoryService{
		RecordFunc: func(_ context.Context, query string, count int) error {
			gotQuery = query
			gotCount = count
			return nil
		},
	}
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, hist)
	view.SetDimensions(80, 24)
	view.searchSeq = 1
	view.lastQuery = "أحمد"

	_, cmd := view.Update(messages.SearchCompleted{Seq: 1, Outcome: testOutcome()})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "أحمد", gotQuery)
	assert.Equal(t, 2, gotCount)
}

func TestView_KeyEnter_BypassesDebounce(t *testing.T) {
	searchCalled := false
	mock := &MockSearchService{
		SearchFunc: func(_ context.Context, query string, _ domain.Filters, _ domain.SearchContext) (*domain.Outcome, error) {
			searchCalled = true
			assert.Equal(t, "test", query)
			return testOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockSettingsService{}, nil)
	view.SetQuery("test")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	result := cmd()
	assert.IsType(t, messages.SearchCompleted{}, result)
	assert.True(t, searchCalled)
}

func TestView_KeyEnter_EmptyQuery(t *testing.T) {
	view := NewView(nil, nil, nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_KeyEnter_OnMoreRowReveals(t *testing.T) {
	results := make([]domain.SearchResult, 0, 15)
	for i := 0; i < 15; i++ {
		results = append(results, domain.SearchResult{
			Type: domain.TypeStudent, ID: string(rune('a' + i)),
			Title: "طالب", Category: "الطلاب", Clickable: true,
		})
	}
	outcome := &domain.Outcome{
		Groups:       domain.NewGroupedResults(results),
		TotalResults: len(results),
	}

	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 40)
	view.searchSeq = 1
	view.Update(messages.SearchCompleted{Seq: 1, Outcome: outcome})

	// Walk the selection down onto the "show more" row.
	for i := 0; i < domain.InitialReveal; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	require.True(t, view.list.OnMoreRow())

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	group := view.Groups().Group("الطلاب")
	require.NotNil(t, group)
	assert.Equal(t, 15, group.Visible)
}

func TestView_RevealMoreKey(t *testing.T) {
	results := make([]domain.SearchResult, 0, 25)
	for i := 0; i < 25; i++ {
		results = append(results, domain.SearchResult{
			Type: domain.TypeStudent, ID: string(rune('a' + i)),
			Title: "طالب", Category: "الطلاب", Clickable: true,
		})
	}
	outcome := &domain.Outcome{
		Groups:       domain.NewGroupedResults(results),
		TotalResults: len(results),
	}

	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 40)
	view.searchSeq = 1
	view.Update(messages.SearchCompleted{Seq: 1, Outcome: outcome})

	view.Update(tea.KeyMsg{Type: tea.KeyTab})

	group := view.Groups().Group("الطلاب")
	require.NotNil(t, group)
	assert.Equal(t, domain.InitialReveal+domain.RevealStep, group.Visible)
}

func TestView_KeyEsc_ClearsQuery(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)
	view.SetQuery("أحمد")

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "", view.Query())
}

func TestView_HistoryQueryPicked_RunsSearch(t *testing.T) {
	var gotQuery string
	mock := &MockSearchService{
		SearchFunc: func(_ context.Context, query string, _ domain.Filters, _ domain.SearchContext) (*domain.Outcome, error) {
			gotQuery = query
			return testOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockSettingsService{}, nil)

	_, cmd := view.Update(messages.HistoryQueryPicked{Query: "سارة"})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "سارة", gotQuery)
	assert.Equal(t, "سارة", view.Query())
}

func TestView_SettingsReloaded_RerunsLastQuery(t *testing.T) {
	calls := 0
	mock := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.Filters, domain.SearchContext) (*domain.Outcome, error) {
			calls++
			return testOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockSettingsService{}, nil)
	view.SetQuery("أحمد")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()

	_, cmd = view.Update(messages.SettingsReloaded{})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 2, calls)
}

func TestView_SettingsReloaded_NoQueryNoSearch(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)

	_, cmd := view.Update(messages.SettingsReloaded{})

	assert.Nil(t, cmd)
}

func TestView_SearchUsesSettingsContext(t *testing.T) {
	settings := &MockSettingsService{settings: driving.Settings{
		Role:           domain.RoleDirector,
		Session:        domain.SessionMorning,
		AcademicYearID: 7,
	}}
	var gotSC domain.SearchContext
	mock := &MockSearchService{
		SearchFunc: func(_ context.Context, _ string, _ domain.Filters, sc domain.SearchContext) (*domain.Outcome, error) {
			gotSC = sc
			return domain.EmptyOutcome(), nil
		},
	}
	view := NewView(nil, nil, mock, settings, nil)
	view.SetQuery("test")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, domain.RoleDirector, gotSC.Role)
	assert.Equal(t, domain.SessionMorning, gotSC.Session)
	assert.Equal(t, int64(7), gotSC.AcademicYearID)
}

func TestView_PerformSearch_NoService(t *testing.T) {
	view := NewView(nil, nil, nil, nil, nil)
	view.SetQuery("test")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	result := cmd()
	errMsg, ok := result.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.Equal(t, ErrNoSearchService, errMsg.Err)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil, nil, nil)

	assert.Equal(t, "...", view.View())
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "باحث")
	assert.Contains(t, output, "بحث")
}

func TestView_View_WithResults(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)
	view.searchSeq = 1
	view.Update(messages.SearchCompleted{Seq: 1, Outcome: testOutcome()})

	output := view.View()

	assert.Contains(t, output, "أحمد خالد")
	assert.Contains(t, output, "الطلاب")
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, &MockSearchService{}, &MockSettingsService{}, nil)
	view.SetDimensions(80, 24)
	view.SetQuery("test")
	view.searchSeq = 1
	view.Update(messages.SearchCompleted{Seq: 1, Outcome: testOutcome()})

	view.Reset()

	assert.Equal(t, "", view.Query())
	assert.Equal(t, 0, view.Groups().Total())
	assert.NoError(t, view.Err())
}
