package profile

import (
	"context"

	"github.com/matsen/orcid/internal/document"
)

// Session is the authenticated context a Profile reads and writes through.
// It is created and owned by the caller.
type Session interface {
	// Identifier returns the ORCID iD of the authenticated researcher.
	Identifier() (string, error)

	// FetchProfile retrieves the full raw profile document. For V12 the
	// accessor passes an empty id and the session substitutes its own.
	FetchProfile(ctx context.Context, id string, version APIVersion) (document.Node, error)

	// WriteEndpoint returns the URL a write under scope must be sent to.
	WriteEndpoint(scope string, version APIVersion, id string) (string, error)

	// AccessToken returns the bearer token for the authenticated context.
	AccessToken() (string, error)
}
