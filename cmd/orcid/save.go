package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/matsen/orcid/internal/config"
	"github.com/matsen/orcid/internal/journal"
	"github.com/matsen/orcid/internal/profile"
	"github.com/spf13/cobra"
)

var saveUnescape bool

func init() {
	saveCmd.Flags().BoolVar(&saveUnescape, "unescape", false, "Strip one layer of backslash escaping from the payload before sending")
	rootCmd.AddCommand(saveCmd)
}

var saveCmd = &cobra.Command{
	Use:   "save <scope> [file|-]",
	Short: "PUT an XML payload to the profile",
	Long: `PUT an XML payload to the endpoint for a write scope.

The scope is an OAuth scope such as /orcid-works/create (which writes to
orcid-works) or a path below the iD such as work/1234. The payload is read
from file, or from stdin when file is omitted or "-".

The request is sent once and never retried. Every attempt is recorded in
the journal (see 'orcid history').

Exit codes:
  0  ORCID accepted the payload
  6  ORCID rejected it or the request failed in transit`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	scope := args[0]

	payload, err := readPayload(args[1:])
	if err != nil {
		exitWithError(ExitError, "reading payload: %v", err)
	}

	p, cfg := mustNewProfile(profile.WithLegacyUnescape(saveUnescape))

	journalDir := cfg.JournalDir
	if fromFile != "" {
		journalDir = ""
	}

	resp, err := saveAndRecord(cmd.Context(), p, journalDir, scope, payload)
	if err != nil {
		exitWithAccessorError(err)
	}

	if humanOutput {
		if resp.OK {
			outputHuman("Saved to %s (HTTP %d)\n", resp.Endpoint, resp.StatusCode)
		} else {
			fmt.Fprintf(os.Stderr, "Save to %s failed: %s\n", resp.Endpoint, resp.Reason)
			if resp.Response != "" {
				fmt.Fprintln(os.Stderr, resp.Response)
			}
		}
	} else {
		outputJSON(resp)
	}

	if !resp.OK {
		os.Exit(ExitSaveFailed)
	}
	return nil
}

// saveAndRecord sends payload and appends the attempt to the journal in
// journalDir, including attempts that fail before the request is issued. An
// empty journalDir disables recording. The error is Save's pre-request error.
func saveAndRecord(ctx context.Context, p *profile.Profile, journalDir, scope, payload string) (SaveResponse, error) {
	result, saveErr := p.Save(ctx, scope, payload)

	journalID := recordSave(journalDir, p, scope, len(payload), result, saveErr)
	if saveErr != nil {
		return SaveResponse{Scope: scope, Reason: saveErr.Error(), JournalID: journalID}, saveErr
	}

	return SaveResponse{
		OK:         result.OK,
		Scope:      scope,
		Endpoint:   result.Endpoint,
		StatusCode: result.StatusCode,
		Reason:     result.Reason,
		Response:   string(result.Body),
		JournalID:  journalID,
	}, nil
}

// readPayload reads the XML body from the named file, or stdin for "-" or
// no argument.
func readPayload(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(config.ExpandPath(args[0]))
	return string(data), err
}

// recordSave appends the attempt to the journal and returns the entry ID.
// Journal failures are logged, not fatal: the save itself already happened.
func recordSave(journalDir string, p *profile.Profile, scope string, payloadBytes int, result *profile.SaveResult, saveErr error) string {
	if journalDir == "" {
		return ""
	}

	id, _ := p.Identifier()
	entry := journal.FromSave(id, p.Version(), scope, payloadBytes, result, saveErr, time.Now())
	if err := journal.Append(journal.JournalPath(journalDir), entry); err != nil {
		slog.Warn("recording save in journal", "error", err)
		return ""
	}
	return entry.ID
}
