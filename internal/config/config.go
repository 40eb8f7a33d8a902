// ABOUTME: fitplan configuration management with backend selection.
// ABOUTME: Handles settings, .env credential loading, and the storage backend factory.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitplan/internal/charm"
	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/recommend"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	BackendSQLite = "sqlite"
	BackendFiles  = "files"
	BackendCharm  = "charm"

	// APIKeyEnv names the environment variable holding the OpenAI credential.
	APIKeyEnv = "OPENAI_API_KEY"

	defaultTimeoutSeconds = 60
)

// Backends lists the accepted backend names.
var Backends = []string{BackendSQLite, BackendFiles, BackendCharm}

// Config stores fitplan configuration. The API key is never part of it.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "files" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts fitplan.db here. Files puts one JSON document per key here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitplan.
	DataDir string `json:"data_dir,omitempty"`

	// Language selects prompt and display language: "ko" (default) or "en".
	Language string `json:"language,omitempty"`

	Model          string `json:"model,omitempty"`
	APIBaseURL     string `json:"api_base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
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

// GetLanguage returns the configured language, defaulting to Korean.
func (c *Config) GetLanguage() labels.Lang {
	lang, err := labels.Parse(c.Language)
	if err != nil || c.Language == "" {
		return labels.Default
	}
	return lang
}

// GetTimeout returns how long a recommendation request may take.
func (c *Config) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
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

// OpenStorage opens the configured backend.
func (c *Config) OpenStorage() (storage.KV, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend rooted at the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "fitplan.db"))
	case BackendFiles:
		return storage.NewFileStore(dataDir)
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// RecommendOptions builds recommendation client options from the config and
// the environment.
func (c *Config) RecommendOptions(logger zerolog.Logger) recommend.Options {
	return recommend.Options{
		APIKey:   APIKey(),
		BaseURL:  c.APIBaseURL,
		Model:    c.Model,
		Language: c.GetLanguage(),
		Logger:   logger,
		HTTPClient: &http.Client{
			Timeout: c.GetTimeout(),
		},
	}
}

// Keys lists the settable config keys in display order.
func Keys() []string {
	return []string{"backend", "data_dir", "language", "model", "api_base_url", "timeout_seconds"}
}

// Get returns the raw value of key as stored in the file.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend":
		return c.Backend, nil
	case "data_dir":
		return c.DataDir, nil
	case "language":
		return c.Language, nil
	case "model":
		return c.Model, nil
	case "api_base_url":
		return c.APIBaseURL, nil
	case "timeout_seconds":
		if c.TimeoutSeconds == 0 {
			return "", nil
		}
		return strconv.Itoa(c.TimeoutSeconds), nil
	}
	return "", unknownKey(key)
}

// Set validates value and assigns it to key. An empty value resets the key
// to its default.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "backend":
		if value != "" && !contains(Backends, value) {
			return fmt.Errorf("invalid backend %q (use %s)", value, strings.Join(Backends, ", "))
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "language":
		if value != "" {
			lang, err := labels.Parse(value)
			if err != nil {
				return err
			}
			value = string(lang)
		}
		c.Language = value
	case "model":
		c.Model = value
	case "api_base_url":
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid api_base_url %q: must start with http:// or https://", value)
		}
		c.APIBaseURL = value
	case "timeout_seconds":
		if value == "" {
			c.TimeoutSeconds = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid timeout_seconds %q: must be a positive integer", value)
		}
		c.TimeoutSeconds = n
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	keys := Keys()
	sort.Strings(keys)
	return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(keys, ", "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// configDir returns $XDG_CONFIG_HOME/fitplan.
func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "fitplan")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(configDir(), "config.json")
}

// EnvFiles returns the .env files LoadEnv reads, in precedence order.
func EnvFiles() []string {
	return []string{".env", filepath.Join(configDir(), ".env")}
}

// LoadEnv loads OPENAI_API_KEY and friends from .env files. Variables that
// are already set are never overridden. Missing files are skipped.
func LoadEnv() error {
	var existing []string
	for _, f := range EnvFiles() {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// APIKey returns the OpenAI credential from the environment.
func APIKey() string {
	return strings.TrimSpace(os.Getenv(APIKeyEnv))
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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
