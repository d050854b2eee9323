// Package journal records ORCID write submissions.
//
// Entries are appended to a JSONL file, which is the source of truth. Queries
// run against an ephemeral SQLite database rebuilt from that file.
package journal

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/matsen/orcid/internal/profile"
)

const (
	JournalFile = "journal.jsonl"
	DBFile      = "journal.db"
)

// Entry is one write attempt against ORCID.
type Entry struct {
	ID            string    `json:"id"`
	At            time.Time `json:"at"`
	ORCID         string    `json:"orcid"`
	APIVersion    string    `json:"api_version"`
	Scope         string    `json:"scope"`
	Endpoint      string    `json:"endpoint,omitempty"`
	OK            bool      `json:"ok"`
	StatusCode    int       `json:"status_code,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	PayloadBytes  int       `json:"payload_bytes"`
	ResponseBytes int       `json:"response_bytes,omitempty"`
}

// JournalPath returns the path to journal.jsonl in dir.
func JournalPath(dir string) string {
	return filepath.Join(dir, JournalFile)
}

// DBPath returns the path to journal.db in dir.
func DBPath(dir string) string {
	return filepath.Join(dir, DBFile)
}

// FromSave builds an entry for a Save call. result is nil when Save failed
// before issuing the request, in which case saveErr gives the reason.
func FromSave(orcidID string, version profile.APIVersion, scope string, payloadBytes int, result *profile.SaveResult, saveErr error, at time.Time) Entry {
	e := Entry{
		ID:           uuid.NewString(),
		At:           at.UTC(),
		ORCID:        orcidID,
		APIVersion:   version.String(),
		Scope:        scope,
		PayloadBytes: payloadBytes,
	}

	switch {
	case result != nil:
		e.Endpoint = result.Endpoint
		e.OK = result.OK
		e.StatusCode = result.StatusCode
		e.Reason = result.Reason
		e.ResponseBytes = len(result.Body)
	case saveErr != nil:
		e.Reason = saveErr.Error()
	}

	return e
}
