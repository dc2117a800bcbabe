// Package config handles the configuration directory, config file and credential paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// ConfigFile is the optional YAML settings file.
	ConfigFile = "config.yaml"

	// SessionFile stores the REST backend session cookies.
	SessionFile = "session.json"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Backend names.
const (
	BackendTodoAPI     = "todoapi"
	BackendGoogleTasks = "googletasks"
)

const (
	// DefaultBaseURL is the public to-do list API.
	DefaultBaseURL = "https://social-network.samuraijs.com/api/1.1/"

	// DefaultTimeout bounds each backend call.
	DefaultTimeout = 10 * time.Second
)

// Settings are the values read from config.yaml and the environment.
type Settings struct {
	Backend string        `yaml:"backend"`
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings
}

// New creates a Config for configDir, reading config.yaml when present.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
// Environment variables TODOCTL_BACKEND, TODOCTL_BASE_URL and TODOCTL_API_KEY
// override the file.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	applyEnv(&cfg.Settings)
	applyDefaults(&cfg.Settings)

	switch cfg.Backend {
	case BackendTodoAPI, BackendGoogleTasks:
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
	return cfg, nil
}

// LoadSettings decodes a YAML settings file. A missing file yields zero settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("TODOCTL_BACKEND"); v != "" {
		s.Backend = v
	}
	if v := os.Getenv("TODOCTL_BASE_URL"); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv("TODOCTL_API_KEY"); v != "" {
		s.APIKey = v
	}
}

func applyDefaults(s *Settings) {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if s.Backend == "" {
		s.Backend = BackendTodoAPI
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(s.BaseURL, "/") {
		s.BaseURL += "/"
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// SessionPath returns the path to the stored session cookies.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	return exists(c.OAuthClientPath())
}

// HasCredentials reports whether the active backend has stored credentials.
func (c *Config) HasCredentials() bool {
	if c.Backend == BackendGoogleTasks {
		return exists(c.TokenPath())
	}
	return exists(c.SessionPath())
}

// RemoveCredentials deletes the stored credentials of the active backend.
// A missing file is not an error.
func (c *Config) RemoveCredentials() error {
	path := c.SessionPath()
	if c.Backend == BackendGoogleTasks {
		path = c.TokenPath()
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
