package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Profile accessors.
var (
	// ErrUpstreamFetch indicates the session failed to retrieve the profile.
	ErrUpstreamFetch = errors.New("fetching ORCID profile")

	// ErrMalformedProfile indicates the document does not have the shape
	// required by the accessor's API version.
	ErrMalformedProfile = errors.New("malformed ORCID profile")

	// ErrStaging indicates the request body could not be staged for upload.
	ErrStaging = errors.New("staging request body")
)

// FetchError wraps a session failure during the profile fetch.
type FetchError struct {
	Version APIVersion
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v (API %s): %v", ErrUpstreamFetch, e.Version, e.Err)
}

// Unwrap returns both the sentinel and the session error so either can be
// matched with errors.Is.
func (e *FetchError) Unwrap() []error {
	return []error{ErrUpstreamFetch, e.Err}
}

// MalformedError reports a required path missing from the document.
type MalformedError struct {
	Version APIVersion
	Path    []string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v (API %s): missing %s", ErrMalformedProfile, e.Version, strings.Join(e.Path, "."))
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedProfile
}

// IsUpstreamFetch returns true if err came from the session fetch.
func IsUpstreamFetch(err error) bool {
	return errors.Is(err, ErrUpstreamFetch)
}

// IsMalformed returns true if err reports a document shape mismatch.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedProfile)
}
