package orcid

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matsen/orcid/internal/document"
	"github.com/matsen/orcid/internal/profile"
	"github.com/tidwall/jsonc"
)

// FileSession serves a record previously exported to disk. The file may be
// plain JSON or JSONC (comments and trailing commas are allowed). Writes are
// rejected with ErrReadOnly.
type FileSession struct {
	path string
	id   string

	doc document.Node
}

var _ profile.Session = (*FileSession)(nil)

// NewFileSession creates a session over the record at path. If id is empty
// the iD is read from the record itself.
func NewFileSession(path, id string) *FileSession {
	return &FileSession{path: path, id: id}
}

func (s *FileSession) load() (document.Node, error) {
	if s.doc != nil {
		return s.doc, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	doc, err := document.DecodeBytes(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, s.path, err)
	}

	s.doc = doc
	return doc, nil
}

// Identifier returns the configured iD or the one recorded in the file. When
// both are present they must agree, otherwise the file holds someone else's
// record and ErrNotFound is returned.
func (s *FileSession) Identifier() (string, error) {
	recorded, err := s.fileIdentifier()
	if s.id == "" {
		return recorded, err
	}
	if err == nil && recorded != s.id {
		return "", fmt.Errorf("%w: %s holds the record of %s, not %s", ErrNotFound, s.path, recorded, s.id)
	}
	if err != nil && !errors.Is(err, ErrNoIdentifier) {
		return "", err
	}
	return s.id, nil
}

// fileIdentifier reads the iD from the document itself:
// orcid-identifier.path for 2.0, orcid-profile.orcid-identifier.path for 1.2.
func (s *FileSession) fileIdentifier() (string, error) {
	doc, err := s.load()
	if err != nil {
		return "", err
	}

	if id, ok := document.String(doc, "orcid-identifier", "path"); ok {
		return id, nil
	}
	if id, ok := document.String(doc, "orcid-profile", "orcid-identifier", "path"); ok {
		return id, nil
	}
	return "", ErrNoIdentifier
}

// FetchProfile returns the file's document. An id that differs from the iD
// recorded in the file, or from the configured one, is reported as not found.
func (s *FileSession) FetchProfile(_ context.Context, id string, _ profile.APIVersion) (document.Node, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	own, err := s.Identifier()
	switch {
	case err != nil && !errors.Is(err, ErrNoIdentifier):
		return nil, err
	case id != "" && err == nil && own != id:
		return nil, fmt.Errorf("%w: %s is not in %s", ErrNotFound, id, s.path)
	}
	return doc, nil
}

// WriteEndpoint always fails: a file session cannot be written to.
func (s *FileSession) WriteEndpoint(string, profile.APIVersion, string) (string, error) {
	return "", ErrReadOnly
}

// AccessToken always fails: a file session has no credentials.
func (s *FileSession) AccessToken() (string, error) {
	return "", ErrReadOnly
}
