// Package config loads and validates pagemark configuration.
//
// Configuration is resolved in three layers, later layers winning:
//  1. Built-in defaults (NewConfig)
//  2. User config (~/.config/pagemark/config.yaml, XDG aware)
//  3. Project config (.pagemark.yaml in the working directory)
//
// PAGEMARK_* environment variables override everything.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectConfigName is the per-directory config file name.
const ProjectConfigName = ".pagemark.yaml"

// Config represents the complete pagemark configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Viewer  ViewerConfig  `yaml:"viewer" json:"viewer"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BackendConfig configures the search backend connection.
type BackendConfig struct {
	// BaseURL is the root URL of the search backend.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Engine selects the free-text search endpoint:
	// "jsonl" for GET /search_jsonl, "typesense" for POST /submit.
	// Preset searches always use GET /preset_jsonl.
	Engine string `yaml:"engine" json:"engine"`

	// Timeout is the per-request timeout as a duration string (e.g. "30s").
	// The original browser client had none and could wedge forever on a
	// hung request; here a hung request surfaces as a transport failure.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// SearchConfig configures result pagination and presentation.
type SearchConfig struct {
	// PerPage is the page size sent to the backend. Constant per session;
	// the has-more heuristic (full page == more pages) depends on it.
	PerPage int `yaml:"per_page" json:"per_page"`

	// CacheSize is the number of result pages kept in the in-memory cache.
	// 0 disables caching.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// ViewerConfig configures how highlight URLs are opened.
type ViewerConfig struct {
	// Command overrides the platform opener (open/xdg-open). The URL is
	// appended as the final argument. Empty uses the platform default.
	Command string `yaml:"command" json:"command"`

	// AutoOpen launches the viewer when a result is selected in the TUI.
	// When false the highlight URL is only displayed.
	AutoOpen bool `yaml:"auto_open" json:"auto_open"`
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Backend: BackendConfig{
			BaseURL: "http://localhost:5000",
			Engine:  "jsonl",
			Timeout: "30s",
		},
		Search: SearchConfig{
			PerPage:   10,
			CacheSize: 64,
		},
		Viewer: ViewerConfig{
			Command:  "",
			AutoOpen: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/pagemark/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/pagemark/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pagemark", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pagemark", "config.yaml")
}

// Load resolves the effective configuration for the given directory.
// Missing files are not errors; malformed files are.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadYAML(filepath.Join(dir, ProjectConfigName)); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadYAML merges a YAML file into the config. A missing file is a no-op.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies PAGEMARK_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PAGEMARK_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("PAGEMARK_ENGINE"); v != "" {
		c.Backend.Engine = v
	}
	if v := os.Getenv("PAGEMARK_TIMEOUT"); v != "" {
		c.Backend.Timeout = v
	}
	if v := os.Getenv("PAGEMARK_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.PerPage = n
		}
	}
	if v := os.Getenv("PAGEMARK_VIEWER"); v != "" {
		c.Viewer.Command = v
	}
	if v := os.Getenv("PAGEMARK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// TimeoutDuration returns the parsed request timeout.
// Falls back to 30s when the string does not parse.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url must not be empty")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend.base_url must be an http(s) URL, got %s", c.Backend.BaseURL)
	}

	validEngines := map[string]bool{"jsonl": true, "typesense": true}
	if !validEngines[strings.ToLower(c.Backend.Engine)] {
		return fmt.Errorf("backend.engine must be 'jsonl' or 'typesense', got %s", c.Backend.Engine)
	}

	if c.Backend.Timeout != "" {
		if _, err := time.ParseDuration(c.Backend.Timeout); err != nil {
			return fmt.Errorf("backend.timeout is not a valid duration: %s", c.Backend.Timeout)
		}
	}

	if c.Search.PerPage < 1 {
		return fmt.Errorf("search.per_page must be at least 1, got %d", c.Search.PerPage)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
