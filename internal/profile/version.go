package profile

import (
	"fmt"
	"strings"
)

// APIVersion selects which ORCID schema generation an accessor navigates.
type APIVersion string

const (
	// V12 is the legacy API rooted at "orcid-profile" / "orcid-bio".
	V12 APIVersion = "1.2"

	// V20 is the API rooted at "person".
	V20 APIVersion = "2.0"

	// DefaultVersion is used when no version is given.
	DefaultVersion = V20
)

// ValidVersions lists the supported API versions.
var ValidVersions = []APIVersion{V12, V20}

// String returns the version as it appears in ORCID URLs (without the "v").
func (v APIVersion) String() string {
	return string(v)
}

// ParseAPIVersion accepts "1.2", "v1.2", "2.0", "v2.0" (case-insensitive).
// An empty string yields DefaultVersion.
func ParseAPIVersion(s string) (APIVersion, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v")
	if s == "" {
		return DefaultVersion, nil
	}
	for _, v := range ValidVersions {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unsupported API version %q (valid: %v)", s, ValidVersions)
}
