package orcid

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches the 16-character iD form: four groups of four, last
// character a digit or X.
var idPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// uriPrefixes are stripped by ParseID, longest first.
var uriPrefixes = []string{
	"https://sandbox.orcid.org/",
	"http://sandbox.orcid.org/",
	"sandbox.orcid.org/",
	"https://orcid.org/",
	"http://orcid.org/",
	"orcid.org/",
}

// ParseID normalizes an ORCID iD given bare or as a URI and verifies its check digit.
// Supported formats:
//   - 0000-0002-1825-0097
//   - 0000-0002-1825-009x
//   - https://orcid.org/0000-0002-1825-0097
//   - orcid.org/0000-0002-1825-0097
func ParseID(input string) (string, error) {
	id := strings.TrimSpace(input)
	lower := strings.ToLower(id)
	for _, prefix := range uriPrefixes {
		if strings.HasPrefix(lower, prefix) {
			id = id[len(prefix):]
			break
		}
	}
	id = strings.ToUpper(strings.TrimSuffix(id, "/"))

	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, input)
	}
	if !ValidChecksum(id) {
		return "", fmt.Errorf("%w: bad check digit in %q", ErrInvalidID, input)
	}
	return id, nil
}

// ValidChecksum reports whether the last character of id is the ISO 7064
// MOD 11-2 check digit of the preceding 15 digits. Hyphens are ignored.
func ValidChecksum(id string) bool {
	digits := strings.ReplaceAll(id, "-", "")
	if len(digits) != 16 {
		return false
	}

	total := 0
	for _, c := range digits[:15] {
		if c < '0' || c > '9' {
			return false
		}
		total = (total + int(c-'0')) * 2
	}
	result := (12 - total%11) % 11

	want := byte('0' + result)
	if result == 10 {
		want = 'X'
	}
	return digits[15] == want
}

// FormatURI returns the canonical https URI for a bare iD.
func FormatURI(id string, env Environment) string {
	return "https://" + env.host() + "/" + id
}
