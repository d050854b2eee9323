package main

import (
	"fmt"

	"github.com/matsen/orcid/internal/orcid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(idCmd)
}

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Print the configured ORCID iD",
	Args:  cobra.NoArgs,
	RunE:  runID,
}

func runID(cmd *cobra.Command, args []string) error {
	p, cfg := mustNewProfile()

	id, err := p.Identifier()
	if err != nil {
		exitWithAccessorError(err)
	}

	env, err := resolveEnvironment(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Println(id)
		return nil
	}
	return outputJSON(IDResponse{ORCID: id, URI: orcid.FormatURI(id, env)})
}
