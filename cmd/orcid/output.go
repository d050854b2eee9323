package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/orcid/internal/journal"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IDResponse is the response for the id command.
type IDResponse struct {
	ORCID string `json:"orcid"`
	URI   string `json:"uri"`
}

// EmailResponse is the response for the email command. Email is null when
// the profile shows no address.
type EmailResponse struct {
	Email *string `json:"email"`
}

// NameResponse is the response for the name command.
type NameResponse struct {
	Name string `json:"name"`
}

// SaveResponse is the response for the save command.
type SaveResponse struct {
	OK         bool   `json:"ok"`
	Scope      string `json:"scope"`
	Endpoint   string `json:"endpoint,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Response   string `json:"response,omitempty"`
	JournalID  string `json:"journal_id,omitempty"`
}

// HistoryResponse is the response for the history command.
type HistoryResponse struct {
	Total   int             `json:"total"`
	Entries []journal.Entry `json:"entries"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	if len(token) <= 4 {
		if token == "" {
			return ""
		}
		return "****"
	}
	return "****" + token[len(token)-4:]
}
