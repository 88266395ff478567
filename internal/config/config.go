package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Placement string `toml:"placement"` // default, top or bottom
	Term      string `toml:"term"`      // overrides $TERM
	LogFile   string `toml:"log_file"`
	Keys      Keys   `toml:"keys"`
}

// Keys overrides key bindings; each entry lists bubbletea key strings
// such as "alt+ctrl+f" or "tab"
type Keys struct {
	Advance        []string `toml:"advance"`
	Retreat        []string `toml:"retreat"`
	Accept         []string `toml:"accept"`
	AcceptSelected []string `toml:"accept_selected"`
	Abort          []string `toml:"abort"`
	Interrupt      []string `toml:"interrupt"`
	EOF            []string `toml:"eof"`
}

// ConfigService handles configuration loading
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service reading the user's config file
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "tmenu", "config.toml"),
	}
}

// Path returns the default config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default location.
// A missing file yields the default configuration.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset fields keep their defaults
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Placement: "default",
	}
}
