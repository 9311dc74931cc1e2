// Package config manages user-level configuration for the grove CLI
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config represents the user's grove CLI configuration
type Config struct {
	// OAuthClient is the installed-application OAuth client to use
	OAuthClient OAuthClient `json:"oauth_client,omitempty"`

	// CurrentAccount stores info about the logged-in Google account
	CurrentAccount *AccountInfo `json:"current_account,omitempty"`

	// DefaultCalendar is the calendar used when none is specified
	DefaultCalendar string `json:"default_calendar,omitempty"`

	// Preferences stores user preferences
	Preferences Preferences `json:"preferences,omitempty"`

	// Version of the config schema
	Version string `json:"version"`
}

// OAuthClient identifies the OAuth installed application. Flags and
// environment variables take precedence over these values.
type OAuthClient struct {
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// AccountInfo stores information about the authorized account
type AccountInfo struct {
	Email     string `json:"email,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Preferences stores user preferences
type Preferences struct {
	// ColorOutput controls whether to use colored output
	ColorOutput bool `json:"color_output"`

	// Verbose controls verbose output
	Verbose bool `json:"verbose"`

	// DefaultOutput is the default output format (table, json, yaml)
	DefaultOutput string `json:"default_output,omitempty"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// configPath returns the path to the config file
func configPath() (string, error) {
	var configDir string

	// Check XDG_CONFIG_HOME first for testing and Linux compatibility
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		configDir = xdgConfig
	} else {
		// Fall back to os.UserConfigDir() for platform-specific defaults
		var err error
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get config directory: %w", err)
		}
	}

	groveDir := filepath.Join(configDir, "grove")
	return filepath.Join(groveDir, "config.json"), nil
}

// Load loads the configuration from disk or creates a new one
func Load() (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = load()
	})

	if err != nil {
		return nil, err
	}

	return instance, nil
}

// load reads the config from disk or creates default
func load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is controlled via configPath()
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// defaultConfig returns a default configuration
func defaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Preferences: Preferences{
			ColorOutput:   true,
			Verbose:       false,
			DefaultOutput: "table",
		},
	}
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	mu.Lock()
	defer mu.Unlock()

	return c.save()
}

// save writes the config to disk. Callers hold mu.
func (c *Config) save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal with indentation for readability
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically by writing to temp file then renaming
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// GetOAuthClient returns the configured OAuth client
func (c *Config) GetOAuthClient() OAuthClient {
	mu.RLock()
	defer mu.RUnlock()
	return c.OAuthClient
}

// SetOAuthClient stores the OAuth client and persists the change
func (c *Config) SetOAuthClient(client OAuthClient) error {
	mu.Lock()
	defer mu.Unlock()

	c.OAuthClient = client
	return c.save()
}

// GetCurrentAccount returns the current account info
func (c *Config) GetCurrentAccount() *AccountInfo {
	mu.RLock()
	defer mu.RUnlock()
	return c.CurrentAccount
}

// SetCurrentAccount updates the current account info
func (c *Config) SetCurrentAccount(account *AccountInfo) error {
	mu.Lock()
	defer mu.Unlock()

	c.CurrentAccount = account
	return c.save()
}

// ClearCurrentAccount removes the current account info
func (c *Config) ClearCurrentAccount() error {
	mu.Lock()
	defer mu.Unlock()

	c.CurrentAccount = nil
	return c.save()
}

// GetDefaultCalendar returns the calendar to use when none is given
func (c *Config) GetDefaultCalendar() string {
	mu.RLock()
	defer mu.RUnlock()

	if c.DefaultCalendar == "" {
		return "primary"
	}
	return c.DefaultCalendar
}

// SetDefaultCalendar sets the default calendar
func (c *Config) SetDefaultCalendar(id string) error {
	mu.Lock()
	defer mu.Unlock()

	c.DefaultCalendar = id
	return c.save()
}

// Reset resets the configuration to defaults
func (c *Config) Reset() error {
	mu.Lock()
	defer mu.Unlock()

	*c = *defaultConfig()
	return c.save()
}
