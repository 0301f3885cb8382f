package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/keymap"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/messages"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/styles"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/views/history"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/views/search"
	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings shared by all views.
	keymap *keymap.KeyMap

	// searchView is the live search view.
	searchView *search.View

	// historyView lists recent queries.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  search.NewView(s, km, ports.Search, ports.Settings, ports.History),
		historyView: history.NewView(s, km, ports.History),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView = a.searchView.WithContext(ctx)
	a.historyView = a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("باحث - بحث المدرسة"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global chords work regardless of the focused input.
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit

		case keymap.Matches(key, a.keymap.Help):
			if a.currentView == messages.ViewHelp {
				a.currentView = messages.ViewSearch
			} else {
				a.currentView = messages.ViewHelp
			}
			return a, nil

		case keymap.Matches(key, a.keymap.History):
			if a.ports.History == nil {
				return a, nil
			}
			a.currentView = messages.ViewHistory
			return a, a.historyView.Load()
		}

		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
			return a, cmd

		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewSearch
			}
			return a, nil
		}
		return a, nil

	case messages.SearchCompleted, messages.DebounceElapsed:
		// Search lifecycle messages always reach the search view so that
		// in-flight searches settle even while another view is open.
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.HistoryQueryPicked:
		a.currentView = messages.ViewSearch
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SettingsReloaded:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Load()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `المساعدة

البحث:
  (اكتب)      يبدأ البحث تلقائياً بعد توقف قصير
  enter       بحث فوري / فتح النتيجة المحددة
  ↑/↓         التنقل بين النتائج
  tab         عرض المزيد من نتائج الفئة المحددة
  esc         مسح البحث
  ctrl+n      بحث جديد

عام:
  ctrl+r      سجل البحث
  F1          المساعدة
  ctrl+c      خروج

[esc] رجوع`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Groups returns the currently displayed grouped results.
func (a *App) Groups() *domain.GroupedResults {
	return a.searchView.Groups()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
