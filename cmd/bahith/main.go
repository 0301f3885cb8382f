// Command bahith is the universal search client for the school
// management system. It wires the driven adapters (backend API client,
// TOML config store, SQLite history store) into the core services and
// hands them to the cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driven/api"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driven/config/file"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driven/storage/sqlite"
	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/cli"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
	"github.com/madrasa-labs/bahith-cli/internal/core/services"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Current()

	client, err := api.NewClient(settings.BaseURL, configStore.GetString("api.token"))
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}
	searchService := services.NewAggregator(client)

	// History is best-effort: a broken local database should never keep
	// search itself from working.
	var historyService driving.HistoryService
	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: search history disabled: %v\n", err)
	} else {
		defer store.Close()
		historyService = services.NewHistoryService(store)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:   searchService,
		Settings: settingsService,
		History:  historyService,
	})
	cli.SetConfigWatcher(func(onReload func()) (func(), error) {
		w, werr := file.NewWatcher(configStore, onReload)
		if werr != nil {
			return nil, werr
		}
		return func() { w.Close() }, nil
	})

	return cli.Execute()
}
