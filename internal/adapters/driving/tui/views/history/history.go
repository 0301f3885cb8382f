// Package history provides the recent-queries view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/keymap"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/messages"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/styles"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// loadLimit caps how many recent queries the view fetches.
const loadLimit = 20

// View lists recent queries; selecting one re-runs it in the search view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.HistoryService
	ctx     context.Context

	entries  []driven.HistoryEntry
	selected int
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the recent queries.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches the recent queries from the history service.
func (v *View) Load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.HistoryLoaded{}
		}
		entries, err := v.service.Recent(v.ctx, loadLimit)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.err = msg.Err
		v.entries = msg.Entries
		if v.selected >= len(v.entries) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}

	case msg.Type == tea.KeyEnter:
		if len(v.entries) == 0 {
			return v, nil
		}
		query := v.entries[v.selected].Query
		return v, func() tea.Msg {
			return messages.HistoryQueryPicked{Query: query}
		}

	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
		return v, nil
	}

	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "..."
	}

	sections := make([]string, 0, len(v.entries)+4)
	sections = append(sections, v.styles.Title.Render("عمليات البحث الأخيرة"), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(v.err.Error()))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if len(v.entries) == 0 {
		sections = append(sections, v.styles.Muted.Render("لا يوجد سجل بحث"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for i, e := range v.entries {
		line := fmt.Sprintf("  %s", e.Query)
		meta := fmt.Sprintf(" (%d)", e.ResultCount)
		if i == v.selected {
			line = "> " + strings.TrimPrefix(line, "  ")
			sections = append(sections, v.styles.Selected.Render(line)+v.styles.Muted.Render(meta))
		} else {
			sections = append(sections, v.styles.Normal.Render(line)+v.styles.Muted.Render(meta))
		}
	}

	sections = append(sections, "", v.styles.Muted.Render("enter: إعادة البحث | esc: رجوع"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Entries returns the loaded history entries.
func (v *View) Entries() []driven.HistoryEntry {
	return v.entries
}

// Selected returns the index of the selected entry.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
