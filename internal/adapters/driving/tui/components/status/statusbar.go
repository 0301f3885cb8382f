// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/keymap"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/styles"
)

// State represents the current search state for display.
type State string

const (
	StateReady     State = "ready"
	StateTyping    State = "typing"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateNoResults State = "no_results"
	StateError     State = "error"
)

// Bar displays search state, result counts, and keybinding hints.
type Bar struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	state        State
	message      string
	resultCount  int
	searchTimeMs int64
	offline      bool
	width        int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state segment.
func (s *Bar) renderLeft() string {
	if s.offline {
		return s.styles.Error.Render("لا يمكن الوصول إلى الخادم")
	}

	switch s.state {
	case StateTyping:
		return s.styles.Muted.Render("...")
	case StateSearching:
		return s.styles.Muted.Render("جارٍ البحث...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(s.message)
		}
		return s.styles.Error.Render("حدث خطأ")
	case StateNoResults:
		return s.styles.Muted.Render("لا توجد نتائج")
	case StateResults:
		return s.styles.Normal.Render(
			fmt.Sprintf("%d نتيجة (%d ms)", s.resultCount, s.searchTimeMs),
		)
	case StateReady:
	}
	return s.styles.Muted.Render("جاهز")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetSearchTime sets the displayed search duration in milliseconds.
func (s *Bar) SetSearchTime(ms int64) {
	s.searchTimeMs = ms
}

// SetOffline marks the backend as unreachable.
func (s *Bar) SetOffline(offline bool) {
	s.offline = offline
}

// Offline reports whether the backend is marked unreachable.
func (s *Bar) Offline() bool {
	return s.offline
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
	s.searchTimeMs = 0
	s.offline = false
}
