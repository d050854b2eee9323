package main

import (
	"fmt"

	"github.com/matsen/orcid/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  orcid config                                  # Show effective config
  orcid config orcid-id                         # Get specific value
  orcid config orcid-id 0000-0002-1825-0097     # Set value
  orcid config environment sandbox              # Use the sandbox registry

Keys:
  orcid-id      The researcher's ORCID iD (checksum is validated)
  access-token  Bearer token from the ORCID OAuth flow
  api-version   1.2 or 2.0
  environment   production or sandbox
  level         pub (public API) or api (member API)
  journal-dir   Directory holding the save journal

Environment variables (ORCID_ID, ORCID_ACCESS_TOKEN, ORCID_API_VERSION,
ORCID_ENVIRONMENT, ORCID_JOURNAL_DIR) override the file when showing values.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	// No args or one arg: show effective values
	if len(args) < 2 {
		cfg := mustLoadConfig()

		keys := config.Keys()
		if len(args) == 1 {
			keys = []string{args[0]}
		}

		values := make(map[string]string, len(keys))
		for _, key := range keys {
			v, err := cfg.Get(key)
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			if key == "access-token" {
				v = maskToken(v)
			}
			values[key] = v
		}

		if humanOutput {
			for _, key := range keys {
				if len(args) == 1 {
					fmt.Println(values[key])
				} else {
					fmt.Printf("%-13s %s\n", key+":", values[key])
				}
			}
			return nil
		}
		return outputJSON(values)
	}

	// Two args: set value in the file, without env overrides or defaults
	key, value := args[0], args[1]
	path := config.Path()

	cfg, err := config.LoadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}
	config.ResetCache()

	stored, _ := cfg.Get(key)
	if key == "access-token" {
		stored = maskToken(stored)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, stored)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: stored})
	}
	return nil
}
