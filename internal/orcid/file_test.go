package orcid

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/orcid/internal/profile"
)

const recordJSONC = `// exported from the sandbox
{
  "orcid-identifier": {"path": "0000-0002-1825-0097"},
  "person": {
    "name": {
      "given-names": {"value": "John"},
      "family-name": {"value": "Smith"}, // trailing comma below
    },
  },
}`

func writeRecord(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSession_JSONC(t *testing.T) {
	s := NewFileSession(writeRecord(t, recordJSONC), "")

	id, err := s.Identifier()
	if err != nil || id != testID {
		t.Fatalf("Identifier() = %q, %v; want %q", id, err, testID)
	}

	p, err := profile.New(s)
	if err != nil {
		t.Fatalf("profile.New() error = %v", err)
	}
	name, err := p.FullName(context.Background())
	if err != nil || name != "John Smith" {
		t.Errorf("FullName() = %q, %v; want %q", name, err, "John Smith")
	}
	if _, ok, err := p.Email(context.Background()); ok || err != nil {
		t.Errorf("Email() ok = %v, err = %v; want false, nil", ok, err)
	}
}

func TestFileSession_V12Identifier(t *testing.T) {
	s := NewFileSession(writeRecord(t, recordV12), "")

	id, err := s.Identifier()
	if err != nil || id != testID {
		t.Fatalf("Identifier() = %q, %v; want %q", id, err, testID)
	}

	p, err := profile.New(s, profile.WithVersion(profile.V12))
	if err != nil {
		t.Fatalf("profile.New() error = %v", err)
	}
	email, ok, err := p.Email(context.Background())
	if err != nil || !ok || email != "testuser@gmail.com" {
		t.Errorf("Email() = %q, %v, %v; want testuser@gmail.com", email, ok, err)
	}
}

func TestFileSession_ExplicitIdentifier(t *testing.T) {
	s := NewFileSession(writeRecord(t, `{}`), "0000-0001-5109-3700")

	if id, _ := s.Identifier(); id != "0000-0001-5109-3700" {
		t.Errorf("Identifier() = %q, want explicit iD", id)
	}
}

func TestFileSession_NoIdentifier(t *testing.T) {
	s := NewFileSession(writeRecord(t, `{"person": {}}`), "")

	if _, err := s.Identifier(); !errors.Is(err, ErrNoIdentifier) {
		t.Errorf("Identifier() error = %v, want ErrNoIdentifier", err)
	}
}

func TestFileSession_WrongIdentifier(t *testing.T) {
	s := NewFileSession(writeRecord(t, recordV20), "")

	_, err := s.FetchProfile(context.Background(), "0000-0001-5109-3700", profile.V20)
	if !IsNotFound(err) {
		t.Errorf("FetchProfile() error = %v, want not found", err)
	}
}

func TestFileSession_ConfiguredIdentifierMismatch(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		version profile.APIVersion
	}{
		{"v2.0 record", recordJSONC, profile.V20},
		{"v1.2 record", recordV12, profile.V12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFileSession(writeRecord(t, tt.record), "0000-0001-5109-3700")

			if _, err := s.Identifier(); !IsNotFound(err) {
				t.Errorf("Identifier() error = %v, want not found", err)
			}
			if _, err := s.FetchProfile(context.Background(), "", tt.version); !IsNotFound(err) {
				t.Errorf("FetchProfile() error = %v, want not found", err)
			}

			p, err := profile.New(s, profile.WithVersion(tt.version))
			if err != nil {
				t.Fatalf("profile.New() error = %v", err)
			}
			name, err := p.FullName(context.Background())
			if !IsNotFound(err) {
				t.Errorf("FullName() = %q, %v; want not found", name, err)
			}
		})
	}
}

func TestFileSession_ConfiguredIdentifierMatches(t *testing.T) {
	s := NewFileSession(writeRecord(t, recordJSONC), testID)

	id, err := s.Identifier()
	if err != nil || id != testID {
		t.Fatalf("Identifier() = %q, %v; want %q", id, err, testID)
	}

	p, err := profile.New(s)
	if err != nil {
		t.Fatalf("profile.New() error = %v", err)
	}
	if name, err := p.FullName(context.Background()); err != nil || name != "John Smith" {
		t.Errorf("FullName() = %q, %v; want John Smith", name, err)
	}
}

func TestFileSession_Errors(t *testing.T) {
	missing := NewFileSession(filepath.Join(t.TempDir(), "nope.json"), "")
	if _, err := missing.FetchProfile(context.Background(), "", profile.V20); err == nil {
		t.Error("FetchProfile() expected error for missing file")
	}

	broken := NewFileSession(writeRecord(t, `{"person": `), "")
	if _, err := broken.FetchProfile(context.Background(), "", profile.V20); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("FetchProfile() error = %v, want ErrInvalidResponse", err)
	}
}

func TestFileSession_ReadOnly(t *testing.T) {
	s := NewFileSession(writeRecord(t, recordV20), "")

	if _, err := s.WriteEndpoint("work", profile.V20, testID); !errors.Is(err, ErrReadOnly) {
		t.Errorf("WriteEndpoint() error = %v, want ErrReadOnly", err)
	}
	if _, err := s.AccessToken(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("AccessToken() error = %v, want ErrReadOnly", err)
	}

	p, err := profile.New(s)
	if err != nil {
		t.Fatalf("profile.New() error = %v", err)
	}
	if _, err := p.Save(context.Background(), "work", "<work/>"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Save() error = %v, want ErrReadOnly", err)
	}
}
