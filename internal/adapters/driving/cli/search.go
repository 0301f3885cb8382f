package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

var (
	searchScopes          []string
	searchSession         string
	searchFrom            string
	searchTo              string
	searchIncludeInactive bool
	searchJSON            bool
	searchLimit           int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search across all permitted categories",
	Long: `Performs one universal search and prints the grouped results.

The configured role decides which categories are searched; requesting a
scope the role may not see silently drops it. Results are grouped by
category with pages first and the remaining categories in Arabic
alphabetical order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchScopes, "scopes", nil,
		"restrict to these scopes (students, teachers, classes, ...)")
	searchCmd.Flags().StringVar(&searchSession, "session", "",
		"restrict to one session (morning or evening)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "",
		"inclusive lower date bound for schedules and notes (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "",
		"inclusive upper date bound for schedules and notes (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchIncludeInactive, "include-inactive", false,
		"also return withdrawn students and former teachers")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0,
		"maximum results printed per category (0 = all)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	sc := settingsService.Current().SearchContext()
	outcome, err := searchService.Search(cmd.Context(), query, filters, sc)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if historyService != nil {
		//nolint:errcheck // history is best effort
		_ = historyService.Record(cmd.Context(), query, outcome.TotalResults)
	}

	if searchJSON {
		return outputSearchJSON(cmd, outcome)
	}
	return outputSearchText(cmd, outcome)
}

// buildFilters validates the flag values into domain filters.
func buildFilters() (domain.Filters, error) {
	filters := domain.Filters{
		DateFrom:        searchFrom,
		DateTo:          searchTo,
		IncludeInactive: searchIncludeInactive,
	}

	switch searchSession {
	case "":
		filters.Session = domain.SessionAll
	case string(domain.SessionMorning):
		filters.Session = domain.SessionMorning
	case string(domain.SessionEvening):
		filters.Session = domain.SessionEvening
	default:
		return filters, fmt.Errorf("unknown session %q (use morning or evening)", searchSession)
	}

	for _, raw := range searchScopes {
		scope := domain.Scope(strings.TrimSpace(raw))
		if !scope.Valid() {
			return filters, fmt.Errorf("unknown scope %q", raw)
		}
		filters.Scopes = append(filters.Scopes, scope)
	}

	return filters, nil
}

// capResults applies the --limit flag to one category's results.
func capResults(results []domain.SearchResult) []domain.SearchResult {
	if searchLimit <= 0 || len(results) <= searchLimit {
		return results
	}
	return results[:searchLimit]
}

// searchOutput is the JSON shape printed by --json.
type searchOutput struct {
	TotalResults        int                 `json:"total_results"`
	SearchTimeMs        int64               `json:"search_time_ms"`
	ConnectivityFailure bool                `json:"connectivity_failure"`
	Groups              []searchOutputGroup `json:"groups"`
}

type searchOutputGroup struct {
	Category string                `json:"category"`
	Results  []domain.SearchResult `json:"results"`
}

func outputSearchJSON(cmd *cobra.Command, outcome *domain.Outcome) error {
	out := searchOutput{
		TotalResults:        outcome.TotalResults,
		SearchTimeMs:        outcome.SearchTimeMs(),
		ConnectivityFailure: outcome.ConnectivityFailure,
		Groups:              []searchOutputGroup{},
	}
	for _, g := range outcome.Groups.Groups {
		out.Groups = append(out.Groups, searchOutputGroup{
			Category: g.Category,
			Results:  capResults(g.Results),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, outcome *domain.Outcome) error {
	if outcome.ConnectivityFailure {
		cmd.PrintErrln("warning: backend unreachable for at least one category")
	}

	if outcome.TotalResults == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("%d results (%d ms)\n\n", outcome.TotalResults, outcome.SearchTimeMs())

	for _, g := range outcome.Groups.Groups {
		cmd.Printf("%s (%d)\n", g.Category, len(g.Results))
		shown := capResults(g.Results)
		for i := range shown {
			r := &shown[i]
			line := fmt.Sprintf("  - %s", r.Title)
			if r.Subtitle != "" {
				line += " — " + r.Subtitle
			}
			if !r.Clickable {
				line += " (current)"
			}
			cmd.Println(line)
			if len(r.Tags) > 0 {
				cmd.Printf("    [%s]\n", strings.Join(r.Tags, " "))
			}
		}
		cmd.Println()
	}

	// Keep piped output clean; the hint is interactive-only.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		cmd.Println("Run 'bahith tui' for interactive search.")
	}

	return nil
}
