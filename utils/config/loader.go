package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config contains the settings shared by the CLI, the API server, and the
// archiver
type Config struct {
	BaseURL      string `json:"base_url"`
	WebsocketURL string `json:"websocket_url"`
	DatabaseURL  string `json:"database_url"`

	// DefaultLimit is how many results commands show by default
	DefaultLimit int `json:"default_limit"`

	// BulkFetchLimit caps the open-event listing the matcher filters over
	BulkFetchLimit int `json:"bulk_fetch_limit"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://gamma-api.polymarket.com",
		WebsocketURL:   "wss://ws-subscriptions-clob.polymarket.com/ws/market",
		DefaultLimit:   5,
		BulkFetchLimit: 200,
	}
}

// Loader handles loading and managing configuration
type Loader struct {
	configDir string
	cache     map[string]*Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return NewLoaderWithDir("configs")
}

// NewLoaderWithDir creates a loader with a custom config directory
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{
		configDir: dir,
		cache:     make(map[string]*Config),
	}
}

// Load reads a config file and applies defaults for unset fields. A missing
// file is not an error; the defaults are returned instead.
func (l *Loader) Load(filename string) (*Config, error) {
	if cached, exists := l.cache[filename]; exists {
		return cached, nil
	}

	config := DefaultConfig()

	path := l.getConfigPath(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cache[filename] = config
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	l.applyDefaults(config)
	l.cache[filename] = config
	return config, nil
}

// LoadFromEnv applies environment variable overrides
func (l *Loader) LoadFromEnv(config *Config) {
	if val := os.Getenv("GAMMA_BASE_URL"); val != "" {
		config.BaseURL = val
	}

	if val := os.Getenv("CLOB_WS_URL"); val != "" {
		config.WebsocketURL = val
	}

	if val := os.Getenv("DATABASE_URL"); val != "" {
		config.DatabaseURL = val
	}

	if val := os.Getenv("DEFAULT_LIMIT"); val != "" {
		if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
			config.DefaultLimit = limit
		}
	}

	if val := os.Getenv("BULK_FETCH_LIMIT"); val != "" {
		if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
			config.BulkFetchLimit = limit
		}
	}
}

// Private methods

func (l *Loader) getConfigPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(l.configDir, filename)
}

func (l *Loader) applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}

	if config.WebsocketURL == "" {
		config.WebsocketURL = defaults.WebsocketURL
	}

	if config.DefaultLimit == 0 {
		config.DefaultLimit = defaults.DefaultLimit
	}

	if config.BulkFetchLimit == 0 {
		config.BulkFetchLimit = defaults.BulkFetchLimit
	}
}
