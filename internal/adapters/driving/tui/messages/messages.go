// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
)

// DebounceElapsed fires when the typing pause timer expires. Seq ties the
// timer to the keystroke that armed it; a newer keystroke bumps the
// sequence and orphans older timers.
type DebounceElapsed struct {
	Seq uint64
}

// SearchCompleted carries one search execution back to the model. Seq
// identifies the execution; responses whose Seq is older than the latest
// issued search are discarded unseen.
type SearchCompleted struct {
	Seq     uint64
	Outcome *domain.Outcome
	Err     error
}

// RevealMore asks a category to widen its visible window.
type RevealMore struct {
	Category string
}

// HistoryLoaded carries recent queries from the history service.
type HistoryLoaded struct {
	Entries []driven.HistoryEntry
	Err     error
}

// HistoryQueryPicked re-runs a remembered query from the history view.
type HistoryQueryPicked struct {
	Query string
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and grouped results view.
	ViewSearch ViewType = iota
	// ViewHistory lists recent queries.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// SettingsReloaded signals the config file changed on disk and the search
// context may have a new role, session, or academic year.
type SettingsReloaded struct{}

// Quit signals the application should exit.
type Quit struct{}
