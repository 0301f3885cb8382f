package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/messages"
)

// configWatcher starts watching the config file for external edits and
// calls onReload when it changes. Set by the composition root; the stop
// function releases the watcher.
var configWatcher func(onReload func()) (stop func(), err error)

// SetConfigWatcher registers the config file watcher hook.
func SetConfigWatcher(w func(onReload func()) (func(), error)) {
	configWatcher = w
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Bahith.

Searches fire automatically as you type, after a short pause. Results
are grouped by category with ten shown per category at first.

Controls:
  (type)   - Enter search query
  Enter    - Search now / open selection
  ↑/↓      - Navigate results
  Tab      - Show more in the selected category
  Ctrl+R   - Recent queries
  F1       - Toggle help
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps the stack trace readable after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Search:   searchService,
		Settings: settingsService,
		History:  historyService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	// The desktop application edits the same config file; pick up role
	// and academic-year changes while the TUI is open.
	if configWatcher != nil {
		stop, werr := configWatcher(func() {
			p.Send(messages.SettingsReloaded{})
		})
		if werr != nil {
			fmt.Fprintf(os.Stderr, "config watch disabled: %v\n", werr)
		} else {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
