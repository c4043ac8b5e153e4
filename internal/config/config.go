// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Hass HassConfig `yaml:"hass"`
	Card CardConfig `yaml:"card"`
	UI   UIConfig   `yaml:"ui"`
}

// HassConfig holds the Home Assistant connection settings.
type HassConfig struct {
	// BaseURL is the instance URL, e.g. http://homeassistant.local:8123
	BaseURL string `yaml:"base_url"`

	// Token is a long-lived access token created in the HA user profile.
	Token string `yaml:"token"`
}

// CardConfig holds the reminder card settings.
type CardConfig struct {
	// EntityID overrides reminder list auto-detection when set. It is used
	// literally and not validated against the registry.
	EntityID string `yaml:"entity_id,omitempty"`

	// User selects the person entity by friendly name. May stay empty when
	// the instance has exactly one person.
	User string `yaml:"user,omitempty"`

	// Locale is a BCP 47 tag for due date display, e.g. "en-US" or "de".
	Locale string `yaml:"locale,omitempty"`

	// RefreshSeconds is the full list refresh cadence.
	RefreshSeconds int `yaml:"refresh_seconds"`

	// PollSeconds is the state registry poll cadence.
	PollSeconds int `yaml:"poll_seconds"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	// Notifications enables desktop notifications for newly overdue
	// reminders.
	Notifications bool `yaml:"notifications"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Card: CardConfig{
			Locale:         "en",
			RefreshSeconds: 60,
			PollSeconds:    15,
		},
		UI: UIConfig{
			Notifications: true,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "hass-reminders-tui")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults backfills zero values a hand-edited file may have dropped.
func (c *Config) applyDefaults() {
	if c.Card.Locale == "" {
		c.Card.Locale = "en"
	}
	if c.Card.RefreshSeconds <= 0 {
		c.Card.RefreshSeconds = 60
	}
	if c.Card.PollSeconds <= 0 {
		c.Card.PollSeconds = 15
	}
}

// HasConnection returns true if the config can reach an instance.
func (c *Config) HasConnection() bool {
	return c.Hass.BaseURL != "" && c.Hass.Token != ""
}
