package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/messages"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
)

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	RecentFunc func(ctx context.Context, limit int) ([]driven.HistoryEntry, error)
}

func (m *MockHistoryService) Record(context.Context, string, int) error { return nil }

func (m *MockHistoryService) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockHistoryService) Clear(context.Context) error { return nil }

func testEntries() []driven.HistoryEntry {
	now := time.Now()
	return []driven.HistoryEntry{
		{ID: "1", Query: "أحمد", ResultCount: 12, ExecutedAt: now},
		{ID: "2", Query: "الصف الثالث", ResultCount: 4, ExecutedAt: now.Add(-time.Minute)},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockHistoryService{})

	require.NotNil(t, view)
	assert.Empty(t, view.Entries())
	assert.Equal(t, 0, view.Selected())
}

func TestView_Load(t *testing.T) {
	var gotLimit int
	mock := &MockHistoryService{
		RecentFunc: func(_ context.Context, limit int) ([]driven.HistoryEntry, error) {
			gotLimit = limit
			return testEntries(), nil
		},
	}
	view := NewView(nil, nil, mock)

	cmd := view.Load()
	require.NotNil(t, cmd)

	result := cmd()
	loaded, ok := result.(messages.HistoryLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Len(t, loaded.Entries, 2)
	assert.Equal(t, loadLimit, gotLimit)
}

func TestView_Load_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	cmd := view.Load()
	require.NotNil(t, cmd)

	result := cmd()
	loaded, ok := result.(messages.HistoryLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Empty(t, loaded.Entries)
}

func TestView_Update_HistoryLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(messages.HistoryLoaded{Entries: testEntries()})

	assert.Len(t, view.Entries(), 2)
	assert.NoError(t, view.Err())
}

func TestView_Update_HistoryLoaded_Error(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(messages.HistoryLoaded{Err: errors.New("store closed")})

	assert.Error(t, view.Err())
}

func TestView_Navigation(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.HistoryLoaded{Entries: testEntries()})

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	// Down past the end stays put.
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())
}

func TestView_Enter_PicksQuery(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.HistoryLoaded{Entries: testEntries()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	result := cmd()
	picked, ok := result.(messages.HistoryQueryPicked)
	require.True(t, ok)
	assert.Equal(t, "الصف الثالث", picked.Query)
}

func TestView_Enter_EmptyHistory(t *testing.T) {
	view := NewView(nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_Esc_ReturnsToSearch(t *testing.T) {
	view := NewView(nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "لا يوجد سجل بحث")
}

func TestView_View_WithEntries(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.HistoryLoaded{Entries: testEntries()})

	output := view.View()

	assert.Contains(t, output, "أحمد")
	assert.Contains(t, output, "الصف الثالث")
	assert.Contains(t, output, "(12)")
}
