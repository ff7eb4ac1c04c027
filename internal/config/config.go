// Package config resolves the settings of an import run from defaults,
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/gnzdotmx/ytpappend/internal/utils"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvAPIKey           = "YOUTUBE_API_KEY"
	EnvOAuthCredentials = "YOUTUBE_OAUTH_CREDENTIALS"
	EnvHistoryDB        = "YTPAPPEND_HISTORY_DB"
)

const (
	defaultRequestsPerSecond = 1.0
	defaultBatchSize         = 50
)

// Config holds the settings of one import run
type Config struct {
	Input             string  `yaml:"input"`
	Target            string  `yaml:"target"`
	APIKey            string  `yaml:"apiKey"`
	OAuthCredentials  string  `yaml:"oauthCredentials"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	BatchSize         int     `yaml:"batchSize"`
	Backup            bool    `yaml:"backup"`
	HistoryDB         string  `yaml:"historyDb"`
	Report            string  `yaml:"report"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		RequestsPerSecond: defaultRequestsPerSecond,
		BatchSize:         defaultBatchSize,
	}
}

// LoadFromFile reads a YAML config file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	utils.LogDebug("Loaded config from %s", path)
	return cfg, nil
}

// Load returns the defaults when path is empty and LoadFromFile otherwise
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// ApplyEnv fills settings that are still empty from the environment
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.OAuthCredentials == "" {
		c.OAuthCredentials = os.Getenv(EnvOAuthCredentials)
	}
	if c.HistoryDB == "" {
		c.HistoryDB = os.Getenv(EnvHistoryDB)
	}
}

// ExpandPaths expands a leading "~/" in every path setting
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Input, &c.Target, &c.OAuthCredentials, &c.HistoryDB, &c.Report} {
		if *p == "" {
			continue
		}
		expanded, err := utils.ExpandHomeDir(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// HasCredential reports whether an API key or OAuth client file is set
func (c *Config) HasCredential() bool {
	return c.APIKey != "" || c.OAuthCredentials != ""
}
