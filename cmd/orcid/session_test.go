package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matsen/orcid/internal/config"
	"github.com/matsen/orcid/internal/journal"
	"github.com/matsen/orcid/internal/orcid"
	"github.com/matsen/orcid/internal/profile"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no identifier", orcid.ErrNoIdentifier, ExitConfigError},
		{"no token", fmt.Errorf("getting access token: %w", orcid.ErrNoAccessToken), ExitAuthError},
		{"unauthorized", &profile.FetchError{Version: profile.V20, Err: fmt.Errorf("%w: status 401", orcid.ErrAuthError)}, ExitAuthError},
		{"not found", &profile.FetchError{Version: profile.V20, Err: &orcid.APIError{StatusCode: 404, Code: "not_found"}}, ExitNotFound},
		{"rate limited", &profile.FetchError{Version: profile.V20, Err: fmt.Errorf("%w: status 429", orcid.ErrRateLimited)}, ExitRateLimited},
		{"malformed", &profile.MalformedError{Version: profile.V12, Path: []string{"orcid-profile"}}, ExitMalformed},
		{"read only", orcid.ErrReadOnly, ExitError},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestResolveVersion(t *testing.T) {
	defer func() { apiVersionFlag = "" }()

	cfg := &config.Config{APIVersion: "1.2"}
	if v, err := resolveVersion(cfg); err != nil || v != profile.V12 {
		t.Errorf("resolveVersion(config 1.2) = %q, %v", v, err)
	}

	apiVersionFlag = "v2.0"
	if v, err := resolveVersion(cfg); err != nil || v != profile.V20 {
		t.Errorf("resolveVersion(flag v2.0) = %q, %v", v, err)
	}

	apiVersionFlag = "3.0"
	if _, err := resolveVersion(cfg); err == nil {
		t.Error("resolveVersion(flag 3.0) should fail")
	}
}

func TestResolveEnvironment(t *testing.T) {
	defer func() { sandboxFlag = false }()

	cfg := &config.Config{Environment: "production"}
	if env, err := resolveEnvironment(cfg); err != nil || env != orcid.Production {
		t.Errorf("resolveEnvironment() = %q, %v; want production", env, err)
	}

	sandboxFlag = true
	if env, _ := resolveEnvironment(cfg); env != orcid.Sandbox {
		t.Errorf("resolveEnvironment(--sandbox) = %q, want sandbox", env)
	}
}

func TestNewSession(t *testing.T) {
	defer func() { fromFile = "" }()

	cfg := &config.Config{ORCID: "0000-0002-1825-0097", AccessToken: "tok", Environment: "sandbox", Level: "api"}
	s, err := newSession(cfg)
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	if _, ok := s.(*orcid.Client); !ok {
		t.Errorf("newSession() = %T, want *orcid.Client", s)
	}
	if id, _ := s.Identifier(); id != cfg.ORCID {
		t.Errorf("Identifier() = %q, want %q", id, cfg.ORCID)
	}

	fromFile = filepath.Join(t.TempDir(), "record.json")
	s, err = newSession(cfg)
	if err != nil {
		t.Fatalf("newSession(--from-file) error = %v", err)
	}
	if _, ok := s.(*orcid.FileSession); !ok {
		t.Errorf("newSession(--from-file) = %T, want *orcid.FileSession", s)
	}
}

func TestReadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.xml")
	if err := os.WriteFile(path, []byte("<work/>"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readPayload([]string{path})
	if err != nil || got != "<work/>" {
		t.Errorf("readPayload() = %q, %v", got, err)
	}

	if _, err := readPayload([]string{filepath.Join(t.TempDir(), "missing.xml")}); err == nil {
		t.Error("readPayload(missing) should fail")
	}
}

func TestMaskToken(t *testing.T) {
	tests := map[string]string{
		"":                                     "",
		"abc":                                  "****",
		"f5af9f51-07e6-4332-8f1a-c0c11c1e3728": "****3728",
	}
	for in, want := range tests {
		if got := maskToken(in); got != want {
			t.Errorf("maskToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatEntryHuman(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	ok := formatEntryHuman(journal.Entry{At: at, OK: true, ORCID: "0000-0002-1825-0097", APIVersion: "2.0", Scope: "work", StatusCode: 201})
	for _, want := range []string{"ok", "v2.0", "work", "HTTP 201"} {
		if !strings.Contains(ok, want) {
			t.Errorf("formatEntryHuman(ok) = %q, missing %q", ok, want)
		}
	}

	failed := formatEntryHuman(journal.Entry{At: at, ORCID: "0000-0002-1825-0097", APIVersion: "2.0", Scope: "work", Reason: "connection refused"})
	if !strings.Contains(failed, "FAILED") || !strings.Contains(failed, "connection refused") {
		t.Errorf("formatEntryHuman(failed) = %q", failed)
	}
}
