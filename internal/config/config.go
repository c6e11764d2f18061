// Package config loads the dashboard's file and environment configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/vettedge/internal/logging"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is the file configuration for the server and CLI. All fields are optional;
// flags and environment variables take precedence and defaults fill the rest.
type Config struct {
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	Fixture     string `json:"fixture,omitempty" yaml:"fixture,omitempty"`           // JSON fixture with roles and candidates
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`         // BCP 47 tag used to order names
	Seed        uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`                 // demo data seed

	Log  logging.Config `json:"log" yaml:"log"`
	Auth AuthConfig     `json:"auth" yaml:"auth"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:     8080,
		Language: "en",
		Seed:     1,
		Log:      logging.Config{Level: "info", Format: "json"},
	}
}

// LoadConfig reads a YAML or JSON config file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}

	return &cfg, nil
}

// Validate checks that set values are usable.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.Fixture != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'fixture' and 'database_url' are mutually exclusive")
	}
	if c.Fixture != "" {
		if _, err := os.Stat(c.Fixture); os.IsNotExist(err) {
			return fmt.Errorf("config error: fixture file not found: %s", c.Fixture)
		}
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("config error: invalid 'language' %q: %w", c.Language, err)
		}
	}
	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or pretty, got %q", c.Log.Format)
	}
	if (c.Auth.Email == "") != (c.Auth.PasswordHash == "") {
		return fmt.Errorf("config error: 'auth.email' and 'auth.password_hash' must be set together")
	}
	return nil
}

// MergeWithDefaults returns a copy with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Fixture == "" {
		result.Fixture = defaults.Fixture
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}
	if result.Log.TimeFormat == "" {
		result.Log.TimeFormat = defaults.Log.TimeFormat
	}
	if result.Auth.Email == "" && result.Auth.PasswordHash == "" {
		result.Auth = defaults.Auth
	}

	return result
}

// Tag returns the parsed collation language, or English when unset or invalid.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}
