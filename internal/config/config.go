// ABOUTME: Configuration management for newsgather
// ABOUTME: JSON config under XDG config dir with defaults and ~ expansion

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mio/newsgather/internal/ingest"
	"github.com/mio/newsgather/internal/storage"
)

// Config stores newsgather configuration.
type Config struct {
	// DataDir is the root directory for the SQLite database.
	// Supports ~ expansion. Defaults to ~/.local/share/newsgather.
	DataDir string `json:"data_dir,omitempty"`

	// FetchTimeoutSeconds bounds a single feed fetch. Defaults to 20.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`

	// Workers bounds concurrent source fetches per ingestion run. Defaults to 4.
	Workers int `json:"workers,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetFetchTimeout returns the configured fetch timeout.
func (c *Config) GetFetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return ingest.DefaultFetchTimeout
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// GetWorkers returns the configured worker count.
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return ingest.DefaultWorkers
	}
	return c.Workers
}

// OpenStorage opens the SQLite store under the configured data directory.
func (c *Config) OpenStorage() (storage.Store, error) {
	dbPath := filepath.Join(c.GetDataDir(), "newsgather.db")
	return storage.NewSQLiteStore(dbPath)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "newsgather", "config.json")
}

// Load reads config from disk. A missing file yields the zero config.
func Load() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// defaultDataDir returns the standard XDG data directory for newsgather.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "newsgather")
}
