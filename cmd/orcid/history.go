package main

import (
	"fmt"
	"os"

	"github.com/matsen/orcid/internal/journal"
	"github.com/spf13/cobra"
)

// DefaultHistoryLimit is the number of entries shown when --limit is not given.
const DefaultHistoryLimit = 20

var (
	historyScope  string
	historyORCID  string
	historyFailed bool
	historyLimit  int
)

func init() {
	historyCmd.Flags().StringVar(&historyScope, "scope", "", "Only show saves to this scope")
	historyCmd.Flags().StringVar(&historyORCID, "orcid", "", "Only show saves for this iD")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "Only show failed saves")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", DefaultHistoryLimit, "Maximum entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded save attempts, newest first",
	Long: `Show recorded save attempts, newest first.

The journal lives in journal.jsonl under the configured journal directory.
A query index (journal.db) is rebuilt from it on every run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if cfg.JournalDir == "" {
		exitWithError(ExitConfigError, "no journal directory configured")
	}

	if err := os.MkdirAll(cfg.JournalDir, 0755); err != nil {
		exitWithError(ExitError, "creating journal directory: %v", err)
	}

	db, err := journal.OpenDB(journal.DBPath(cfg.JournalDir))
	if err != nil {
		exitWithError(ExitError, "opening journal index: %v", err)
	}
	defer db.Close()

	total, err := db.RebuildFromJSONL(journal.JournalPath(cfg.JournalDir))
	if err != nil {
		exitWithError(ExitError, "rebuilding journal index: %v", err)
	}

	entries, err := db.Query(journal.Filter{
		Scope:      historyScope,
		ORCID:      historyORCID,
		FailedOnly: historyFailed,
		Limit:      historyLimit,
	})
	if err != nil {
		exitWithError(ExitError, "querying journal: %v", err)
	}

	if !humanOutput {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return outputJSON(HistoryResponse{Total: total, Entries: entries})
	}

	if len(entries) == 0 {
		fmt.Println("No saves recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Println(formatEntryHuman(e))
	}
	return nil
}

// formatEntryHuman renders one journal entry on a single line.
func formatEntryHuman(e journal.Entry) string {
	status := "ok"
	if !e.OK {
		status = "FAILED"
	}

	line := fmt.Sprintf("%s  %-6s  %s  v%s  %s", e.At.Local().Format("2006-01-02 15:04:05"), status, e.ORCID, e.APIVersion, e.Scope)
	if e.StatusCode != 0 {
		line += fmt.Sprintf("  HTTP %d", e.StatusCode)
	}
	if !e.OK && e.Reason != "" && e.StatusCode == 0 {
		line += "  " + e.Reason
	}
	return line
}
