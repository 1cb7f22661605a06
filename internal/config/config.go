// ABOUTME: Configuration management for birdlog with YAML config loading.
// ABOUTME: Handles journal file location, map defaults, server address, logging, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/birdlog/internal/models"
)

// DefaultListen is the HTTP address used when none is configured.
const DefaultListen = ":8765"

// Config stores birdlog configuration loaded from ~/.config/birdlog/config.yaml.
type Config struct {
	Journal JournalConfig `yaml:"journal"`
	Map     MapConfig     `yaml:"map"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// JournalConfig holds an optional override for the journal file.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// MapConfig holds the fallback location for new sightings. Zero values mean "use the built-in default".
type MapConfig struct {
	DefaultLat  float64 `yaml:"default_lat"`
	DefaultLng  float64 `yaml:"default_lng"`
	DefaultZoom float32 `yaml:"default_zoom"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// GetJournalPath returns the journal file path, defaulting to $XDG_DATA_HOME/birdlog/birds.json.
func (c *Config) GetJournalPath() (string, error) {
	if c.Journal.Path != "" {
		return ExpandPath(c.Journal.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "birds.json"), nil
}

// DefaultLocation returns the configured fallback location, filling unset parts from the built-in default.
func (c *Config) DefaultLocation() models.Location {
	loc := models.DefaultLocation()
	if c.Map.DefaultLat != 0 || c.Map.DefaultLng != 0 {
		loc.Lat = c.Map.DefaultLat
		loc.Lng = c.Map.DefaultLng
	}
	if c.Map.DefaultZoom > 0 {
		loc.Zoom = c.Map.DefaultZoom
	}
	return loc
}

// GetListen returns the HTTP listen address.
func (c *Config) GetListen() string {
	if c.Server.Listen != "" {
		return c.Server.Listen
	}
	return DefaultListen
}

// GetLogLevel returns the log level, defaulting to warn so CLI output stays clean.
func (c *Config) GetLogLevel() string {
	if c.Log.Level != "" {
		return c.Log.Level
	}
	return "warn"
}

// DataDir returns the default birdlog data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "birdlog"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "birdlog", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
