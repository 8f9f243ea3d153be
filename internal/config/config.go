// ABOUTME: Vantage configuration management
// ABOUTME: Loads settings through viper with defaults, env overrides, and a storage factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/storage"
	"github.com/spf13/viper"
)

// Config stores vantage configuration.
type Config struct {
	// MaxHistorySize bounds each of the back and forward stacks.
	MaxHistorySize int `json:"max_history_size" mapstructure:"max_history_size"`

	// SettleDelay is how long the camera must stay still before a viewpoint is
	// auto-recorded, as a Go duration string. "0s" disables auto-recording.
	SettleDelay string `json:"settle_delay" mapstructure:"settle_delay"`

	// DataDir is the root directory for the saved places database.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/vantage.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// LogLevel is one of trace, debug, info, warn, error, off.
	LogLevel string `json:"log_level" mapstructure:"log_level"`
}

const (
	defaultSettleDelay = "1s"
	defaultLogLevel    = "info"
	placesDBFilename   = "places.db"
	envPrefix          = "VANTAGE"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		MaxHistorySize: history.DefaultMaxSize,
		SettleDelay:    defaultSettleDelay,
		LogLevel:       defaultLogLevel,
	}
}

// GetMaxHistorySize returns the configured stack bound, defaulting to 50.
func (c *Config) GetMaxHistorySize() int {
	if c.MaxHistorySize < 1 {
		return history.DefaultMaxSize
	}
	return c.MaxHistorySize
}

// GetSettleDelay parses the settle delay, defaulting to one second when empty.
func (c *Config) GetSettleDelay() (time.Duration, error) {
	raw := strings.TrimSpace(c.SettleDelay)
	if raw == "" {
		raw = defaultSettleDelay
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid settle_delay %q: %w", c.SettleDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("settle_delay cannot be negative")
	}
	return d, nil
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// defaultDataDir returns the default XDG data directory for vantage.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "vantage")
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

// PlacesDBPath returns the path of the saved places database.
func (c *Config) PlacesDBPath() string {
	return filepath.Join(c.GetDataDir(), placesDBFilename)
}

// OpenStorage opens the saved places database under the data directory.
func (c *Config) OpenStorage() (*storage.SQLiteDB, error) {
	return storage.NewSQLiteDB(c.PlacesDBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vantage", "config.json")
}

// Load reads config from disk, creating a default file on first run.
// VANTAGE_* environment variables override file values.
func Load() (*Config, error) {
	path := GetConfigPath()
	defaults := Default()

	v := viper.New()
	v.SetDefault("max_history_size", defaults.MaxHistorySize)
	v.SetDefault("settle_delay", defaults.SettleDelay)
	v.SetDefault("data_dir", "")
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if saveErr := defaults.Save(); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
		}
	} else {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk, replacing any existing file atomically.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil { //nolint:gosec // 0750 is appropriate for user config directory
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close config: %w", err)
	}
	return os.Rename(tmpName, path)
}
