// Package config handles the global orcid configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matsen/orcid/internal/orcid"
	"github.com/matsen/orcid/internal/profile"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/orcid/config.yml.
type Config struct {
	ORCID       string `yaml:"orcid_id,omitempty" validate:"omitempty,orcid"`
	AccessToken string `yaml:"access_token,omitempty"`
	APIVersion  string `yaml:"api_version,omitempty" validate:"omitempty,oneof=1.2 2.0"`
	Environment string `yaml:"environment,omitempty" validate:"omitempty,oneof=production sandbox"`
	Level       string `yaml:"level,omitempty" validate:"omitempty,oneof=pub api"`
	JournalDir  string `yaml:"journal_dir,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME and XDG_STATE_HOME.
	ConfigDir = "orcid"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultAPIVersion  = "2.0"
	DefaultEnvironment = "production"
	DefaultLevel       = "api"
)

// Environment variables that override the config file.
const (
	EnvORCID       = "ORCID_ID"
	EnvAccessToken = "ORCID_ACCESS_TOKEN"
	EnvAPIVersion  = "ORCID_API_VERSION"
	EnvEnvironment = "ORCID_ENVIRONMENT"
	EnvJournalDir  = "ORCID_JOURNAL_DIR"
)

// ErrUnknownKey is returned by Get and Set for keys not in Keys.
var ErrUnknownKey = errors.New("unknown configuration key")

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/orcid/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultJournalDir returns the journal directory used when none is configured.
// Respects XDG_STATE_HOME, defaults to ~/.local/state/orcid.
func DefaultJournalDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, ConfigDir)
}

// Load reads the config file, applies environment overrides and defaults, and
// validates the result. A missing file is not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.normalize()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// LoadFile reads a config file without environment overrides or defaults.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.JournalDir != "" {
		cfg.JournalDir = ExpandPath(cfg.JournalDir)
	}

	return &cfg, nil
}

// Save writes the config to path, creating parent directories. The file
// holds a token, so it is written owner-only.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overrides file values with non-empty environment variables.
func (c *Config) ApplyEnv() {
	c.ORCID = GetConfigValue(EnvORCID, c.ORCID)
	c.AccessToken = GetConfigValue(EnvAccessToken, c.AccessToken)
	c.APIVersion = GetConfigValue(EnvAPIVersion, c.APIVersion)
	c.Environment = GetConfigValue(EnvEnvironment, c.Environment)
	c.JournalDir = ExpandPath(GetConfigValue(EnvJournalDir, c.JournalDir))
}

// normalize rewrites spellings the CLI parsers accept ("v2.0", "prod") to
// the canonical values the config stores. Unparseable values are left for
// Validate to report.
func (c *Config) normalize() {
	if c.APIVersion != "" {
		if v, err := profile.ParseAPIVersion(c.APIVersion); err == nil {
			c.APIVersion = v.String()
		}
	}
	if c.Environment != "" {
		if env, err := orcid.ParseEnvironment(c.Environment); err == nil {
			c.Environment = environmentName(env)
		}
	}
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
}

func environmentName(env orcid.Environment) string {
	if env == orcid.Sandbox {
		return string(orcid.Sandbox)
	}
	return DefaultEnvironment
}

func (c *Config) applyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.JournalDir == "" {
		c.JournalDir = DefaultJournalDir()
	}
}

// GetConfigValue returns the environment variable if set, else the config value.
func GetConfigValue(envKey, configValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return configValue
}

// Keys lists the settable configuration keys.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fields maps CLI keys to config fields.
var fields = map[string]func(*Config) *string{
	"orcid-id":     func(c *Config) *string { return &c.ORCID },
	"access-token": func(c *Config) *string { return &c.AccessToken },
	"api-version":  func(c *Config) *string { return &c.APIVersion },
	"environment":  func(c *Config) *string { return &c.Environment },
	"level":        func(c *Config) *string { return &c.Level },
	"journal-dir":  func(c *Config) *string { return &c.JournalDir },
}

// Get returns the value for key.
func (c *Config) Get(key string) (string, error) {
	field, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s (valid: %v)", ErrUnknownKey, key, Keys())
	}
	return *field(c), nil
}

// Set assigns value to key and validates the result. On validation failure
// the config is left unchanged.
func (c *Config) Set(key, value string) error {
	field, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s (valid: %v)", ErrUnknownKey, key, Keys())
	}

	if key == "journal-dir" {
		value = ExpandPath(value)
	}

	ptr := field(c)
	old := *ptr
	*ptr = value
	c.normalize()
	if err := c.Validate(); err != nil {
		*ptr = old
		return err
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage returns a message explaining how to configure credentials.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`No ORCID credentials configured.

Tip: Create %s:
  mkdir -p %s
  orcid config orcid-id 0000-0002-1825-0097
  orcid config access-token <token>

or set %s and %s (a .env file in the current directory is read too).`,
		configPath,
		filepath.Dir(configPath),
		EnvORCID,
		EnvAccessToken)
}
