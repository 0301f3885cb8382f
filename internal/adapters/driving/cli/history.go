package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent search queries",
	Long: `Lists the most recent search queries, newest first.

Only the query text and result counts are stored; results themselves are
never persisted.`,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recorded queries",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("%s  %s (%d results)\n",
			e.ExecutedAt.Local().Format("2006-01-02 15:04"), e.Query, e.ResultCount)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Clear(cmd.Context()); err != nil {
		return err
	}

	cmd.Println("Search history cleared.")
	return nil
}
