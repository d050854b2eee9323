package main

import (
	"fmt"

	"github.com/matsen/orcid/internal/document"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile [raw|person|bio]",
	Short: "Print the profile document or one of its sections",
	Long: `Print the profile document as JSON.

Sections:
  raw     The full record (default). For API 1.2 this is the content of
          the "orcid-profile" wrapper.
  person  The "person" section (API 2.0 only)
  bio     The "orcid-bio" section (API 1.2 only)

Output is always JSON; --human only changes error formatting.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"raw", "person", "bio"},
	RunE:      runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	section := "raw"
	if len(args) == 1 {
		section = args[0]
	}

	p, _ := mustNewProfile()
	ctx := cmd.Context()

	var (
		node document.Node
		err  error
	)
	switch section {
	case "raw":
		node, err = p.Raw(ctx)
	case "person":
		node, err = p.Person(ctx)
	case "bio":
		node, err = p.Bio(ctx)
	default:
		exitWithError(ExitError, "unknown section %q (valid: raw, person, bio)", section)
	}
	if err != nil {
		exitWithAccessorError(err)
	}

	if node == nil {
		exitWithError(ExitError, "section %q is not available for API %s", section, p.Version())
	}

	if err := outputJSON(node); err != nil {
		return fmt.Errorf("encoding %s: %w", section, err)
	}
	return nil
}
