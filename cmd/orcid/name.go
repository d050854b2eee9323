package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(nameCmd)
}

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Print the researcher's full name",
	Args:  cobra.NoArgs,
	RunE:  runName,
}

func runName(cmd *cobra.Command, args []string) error {
	p, _ := mustNewProfile()

	name, err := p.FullName(cmd.Context())
	if err != nil {
		exitWithAccessorError(err)
	}

	if humanOutput {
		fmt.Println(name)
		return nil
	}
	return outputJSON(NameResponse{Name: name})
}
