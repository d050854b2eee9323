package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/orcid/internal/config"
	"github.com/matsen/orcid/internal/orcid"
	"github.com/matsen/orcid/internal/profile"
)

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// resolveVersion returns the API version from --api-version or the config.
func resolveVersion(cfg *config.Config) (profile.APIVersion, error) {
	if apiVersionFlag != "" {
		return profile.ParseAPIVersion(apiVersionFlag)
	}
	return profile.ParseAPIVersion(cfg.APIVersion)
}

// resolveEnvironment returns the registry from --sandbox or the config.
func resolveEnvironment(cfg *config.Config) (orcid.Environment, error) {
	if sandboxFlag {
		return orcid.Sandbox, nil
	}
	return orcid.ParseEnvironment(cfg.Environment)
}

// newSession builds the session the commands read through: a FileSession
// when --from-file is given, otherwise an HTTP client configured from cfg.
func newSession(cfg *config.Config) (profile.Session, error) {
	if fromFile != "" {
		return orcid.NewFileSession(config.ExpandPath(fromFile), cfg.ORCID), nil
	}

	env, err := resolveEnvironment(cfg)
	if err != nil {
		return nil, err
	}

	return orcid.NewClient(
		orcid.WithORCID(cfg.ORCID),
		orcid.WithAccessToken(cfg.AccessToken),
		orcid.WithEnvironment(env),
		orcid.WithLevel(orcid.Level(cfg.Level)),
		orcid.WithLogger(slog.Default()),
	), nil
}

// mustNewProfile loads config and builds a Profile, exits on error.
func mustNewProfile(opts ...profile.Option) (*profile.Profile, *config.Config) {
	cfg := mustLoadConfig()

	version, err := resolveVersion(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	session, err := newSession(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	opts = append([]profile.Option{
		profile.WithVersion(version),
		profile.WithLogger(slog.Default()),
	}, opts...)

	p, err := profile.New(session, opts...)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return p, cfg
}

// exitCodeFor maps an accessor or session error to an exit code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, orcid.ErrNoIdentifier):
		return ExitConfigError
	case orcid.IsAuthError(err):
		return ExitAuthError
	case orcid.IsRateLimited(err):
		return ExitRateLimited
	case orcid.IsNotFound(err):
		return ExitNotFound
	case profile.IsMalformed(err):
		return ExitMalformed
	default:
		return ExitError
	}
}

// exitWithAccessorError reports err with the exit code it maps to. A missing
// iD also prints setup instructions.
func exitWithAccessorError(err error) {
	code := exitCodeFor(err)
	if code == ExitConfigError && fromFile == "" {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
	}
	exitWithError(code, "%v", err)
}
