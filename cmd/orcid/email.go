package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(emailCmd)
}

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Print the first email address on the profile",
	Long: `Print the first email address on the profile.

Researchers often hide their contact details; in that case the output is
{"email": null} (or nothing with --human) and the exit code is 0.`,
	Args: cobra.NoArgs,
	RunE: runEmail,
}

func runEmail(cmd *cobra.Command, args []string) error {
	p, _ := mustNewProfile()

	email, ok, err := p.Email(cmd.Context())
	if err != nil {
		exitWithAccessorError(err)
	}

	if humanOutput {
		if ok {
			fmt.Println(email)
		}
		return nil
	}

	resp := EmailResponse{}
	if ok {
		resp.Email = &email
	}
	return outputJSON(resp)
}
