// Package search provides the live search view for the TUI.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/components/input"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/components/list"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/components/status"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/keymap"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/messages"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/styles"
	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// DebounceDelay is how long the input must rest before a search fires.
const DebounceDelay = 300 * time.Millisecond

// View is the live search view: query input, grouped results, status bar.
// Searches fire automatically after a typing pause; responses that arrive
// for a superseded query are discarded by sequence number.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.GroupList
	statusbar *status.Bar

	searchService   driving.SearchService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	ctx             context.Context

	// debounceSeq identifies the latest keystroke; an expired timer with an
	// older sequence is an orphan and fires no search.
	debounceSeq uint64

	// searchSeq identifies the latest issued search; completed searches with
	// an older sequence are stale and are dropped unrendered.
	searchSeq uint64

	lastQuery string
	err       error

	width  int
	height int
	ready  bool
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	settingsService driving.SettingsService,
	historyService driving.HistoryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewSearchInput(s),
		list:            list.NewGroupList(s),
		statusbar:       status.NewBar(s, km),
		searchService:   searchService,
		settingsService: settingsService,
		historyService:  historyService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		return v.handleDebounceElapsed(msg)

	case messages.SearchCompleted:
		return v.handleSearchCompleted(msg)

	case messages.RevealMore:
		v.list.RevealMore(msg.Category)
		return v, nil

	case messages.HistoryQueryPicked:
		v.input.SetValue(msg.Query)
		v.input.Focus()
		return v, v.startSearch(msg.Query)

	case messages.SettingsReloaded:
		// The academic year or role changed underneath us; the current
		// results may no longer be visible to the new context.
		if v.lastQuery != "" {
			return v, v.startSearch(v.lastQuery)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		// Esc clears the current query rather than leaving the view.
		v.Reset()
		return v, v.input.Focus()

	case msg.Type == tea.KeyEnter:
		// The selection may sit on a "show more" row.
		if v.list.OnMoreRow() {
			v.list.RevealMore(v.list.SelectedCategory())
			return v, nil
		}
		// Enter bypasses the debounce: search now.
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.debounceSeq++ // orphan any pending timer
		return v, v.startSearch(query)

	case msg.Type == tea.KeyUp:
		v.list.MoveUp()
		return v, nil

	case msg.Type == tea.KeyDown:
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(key, v.keymap.RevealMore):
		if cat := v.list.SelectedCategory(); cat != "" {
			v.list.RevealMore(cat)
		}
		return v, nil

	case keymap.Matches(key, v.keymap.NewSearch):
		v.Reset()
		return v, v.input.Focus()
	}

	// Everything else edits the query.
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		return v, tea.Batch(cmd, v.armDebounce())
	}
	return v, cmd
}

// armDebounce restarts the typing-pause timer. Each keystroke bumps the
// sequence so that only the final timer of a burst fires a search.
func (v *View) armDebounce() tea.Cmd {
	v.debounceSeq++
	seq := v.debounceSeq
	v.statusbar.SetState(status.StateTyping)
	return tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Seq: seq}
	})
}

// handleDebounceElapsed fires a search if the timer is still current.
func (v *View) handleDebounceElapsed(msg messages.DebounceElapsed) (*View, tea.Cmd) {
	if msg.Seq != v.debounceSeq {
		return v, nil // a newer keystroke re-armed the timer
	}

	query := strings.TrimSpace(v.input.Value())
	if query == "" {
		v.clearResults()
		return v, nil
	}
	return v, v.startSearch(query)
}

// startSearch issues a search with a fresh sequence number.
func (v *View) startSearch(query string) tea.Cmd {
	v.searchSeq++
	seq := v.searchSeq
	v.lastQuery = query
	v.err = nil
	v.statusbar.SetState(status.StateSearching)

	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		sc := domain.SearchContext{}
		if v.settingsService != nil {
			sc = v.settingsService.Current().SearchContext()
		}

		outcome, err := v.searchService.Search(v.ctx, query, domain.Filters{}, sc)
		return messages.SearchCompleted{Seq: seq, Outcome: outcome, Err: err}
	}
}

// handleSearchCompleted renders a search outcome, unless it is stale.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) (*View, tea.Cmd) {
	if msg.Seq != v.searchSeq {
		return v, nil // response for a superseded query
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	v.err = nil
	v.list.SetGroups(msg.Outcome.Groups)
	v.statusbar.SetOffline(msg.Outcome.ConnectivityFailure)
	v.statusbar.SetResultCount(msg.Outcome.TotalResults)
	v.statusbar.SetSearchTime(msg.Outcome.SearchTimeMs())
	if msg.Outcome.TotalResults == 0 {
		v.statusbar.SetState(status.StateNoResults)
	} else {
		v.statusbar.SetState(status.StateResults)
	}

	return v, v.recordHistory(v.lastQuery, msg.Outcome.TotalResults)
}

// recordHistory remembers the executed query. Best effort; history is
// optional and failures never surface in the UI.
func (v *View) recordHistory(query string, count int) tea.Cmd {
	if v.historyService == nil {
		return nil
	}
	return func() tea.Msg {
		_ = v.historyService.Record(v.ctx, query, count) //nolint:errcheck
		return nil
	}
}

// clearResults empties the list without an error.
func (v *View) clearResults() {
	v.lastQuery = ""
	v.searchSeq++ // orphan any in-flight search
	v.err = nil
	v.list.SetGroups(&domain.GroupedResults{})
	v.statusbar.Clear()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("باحث")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // header, input, status
	v.statusbar.SetWidth(width)
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Groups returns the currently displayed grouped results.
func (v *View) Groups() *domain.GroupedResults {
	return v.list.Groups()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Reset resets the view to an empty query.
func (v *View) Reset() {
	v.input.SetValue("")
	v.clearResults()
}
