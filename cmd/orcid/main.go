// Package main provides the orcid CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags
var (
	humanOutput    bool
	apiVersionFlag string
	fromFile       string
	sandboxFlag    bool
	verbose        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (bad flags, missing args) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orcid",
	Short: "Read and update an ORCID researcher profile",
	Long: `orcid reads a researcher's ORCID record and pushes updates to it.

Reads work against the public or member API (1.2 or 2.0 schemas), or
offline against an exported record with --from-file. Every save is
recorded in a local JSONL journal, queryable with 'orcid history'.

All commands output JSON by default for agent consumption.
Use --human for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	// Load .env file if present (for ORCID_ID and ORCID_ACCESS_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&apiVersionFlag, "api-version", "", "ORCID API version (1.2 or 2.0; overrides config)")
	rootCmd.PersistentFlags().StringVar(&fromFile, "from-file", "", "Read the record from an exported JSON/JSONC file instead of the API")
	rootCmd.PersistentFlags().BoolVar(&sandboxFlag, "sandbox", false, "Use the ORCID sandbox registry")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")
	rootCmd.Version = Version
}
