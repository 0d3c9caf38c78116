// ABOUTME: ironlog configuration management with backend selection.
// ABOUTME: Handles settings, API credentials, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/ironlog/internal/catalog"
	"github.com/harperreed/ironlog/internal/charm"
	"github.com/harperreed/ironlog/internal/insight"
	"github.com/harperreed/ironlog/internal/storage"
)

const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"

	EnvExerciseAPIKey = "IRONLOG_EXERCISE_API_KEY"
	EnvInsightAPIKey  = "IRONLOG_INSIGHT_API_KEY"
)

// Config stores ironlog configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data: the SQLite database,
	// the lock file and the photo store. Supports ~ expansion.
	// Defaults to ~/.local/share/ironlog.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	ExerciseAPI *ExerciseAPIConfig `json:"exercise_api,omitempty"`
	Insight     *InsightConfig     `json:"insight,omitempty"`
}

// ExerciseAPIConfig configures the remote exercise catalog.
type ExerciseAPIConfig struct {
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	Host    string `json:"host,omitempty"`
}

// InsightConfig configures the insight model endpoint.
type InsightConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// PhotosDir returns the photo store directory inside the data dir.
func (c *Config) PhotosDir() string {
	return filepath.Join(c.GetDataDir(), "photos")
}

// RemoteCatalog returns the exercise API settings. The API key
// environment variable wins over the file.
func (c *Config) RemoteCatalog() catalog.RemoteConfig {
	var rc catalog.RemoteConfig
	if c.ExerciseAPI != nil {
		rc = catalog.RemoteConfig{
			BaseURL: c.ExerciseAPI.BaseURL,
			APIKey:  c.ExerciseAPI.APIKey,
			Host:    c.ExerciseAPI.Host,
		}
	}
	if v := os.Getenv(EnvExerciseAPIKey); v != "" {
		rc.APIKey = v
	}
	return rc
}

// InsightModel returns the insight endpoint settings. The API key
// environment variable wins over the file.
func (c *Config) InsightModel() insight.HTTPConfig {
	var hc insight.HTTPConfig
	if c.Insight != nil {
		hc = insight.HTTPConfig{
			Endpoint: c.Insight.Endpoint,
			APIKey:   c.Insight.APIKey,
			Model:    c.Insight.Model,
		}
	}
	if v := os.Getenv(EnvInsightAPIKey); v != "" {
		hc.APIKey = v
	}
	return hc
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

// OpenStorage creates a snapshot Backend based on the configured backend.
func (c *Config) OpenStorage() (storage.Backend, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend regardless of the configured one.
func (c *Config) OpenBackend(name string) (storage.Backend, error) {
	switch name {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), "ironlog.db"))
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", name)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "ironlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
