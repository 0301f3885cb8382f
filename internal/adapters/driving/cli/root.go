// Package cli provides the cobra command tree for bahith.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
	"github.com/madrasa-labs/bahith-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	searchService   driving.SearchService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
)

// Services bundles the driving ports the CLI depends on.
type Services struct {
	Search   driving.SearchService
	Settings driving.SettingsService
	History  driving.HistoryService
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	searchService = s.Search
	settingsService = s.Settings
	historyService = s.History
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "bahith",
	Short: "Universal search across the school management system",
	Long: `Bahith searches every corner of the school management system from one
query box: students, teachers, classes, schedules, activities, director
notes, finance records, academic years, and application pages.

Results are scoped to the configured role; categories the role may not
see are never queried. Run 'bahith tui' for the interactive interface or
'bahith search' for one-shot queries.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
