// Package config loads and persists application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Scryfall import configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Recommendation engine configuration
	Recommender RecommenderConfig `toml:"recommender"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DatabaseConfig contains card store settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the SQLite database
	AutoMigrate bool   `toml:"auto_migrate"` // Run schema migrations on open
}

// ScryfallConfig contains bulk import settings.
type ScryfallConfig struct {
	BulkFile  string `toml:"bulk_file"`  // Local bulk-data JSON (empty = download)
	WatchFile bool   `toml:"watch_file"` // Reimport when the bulk file changes
}

// RecommenderConfig contains scoring and matching settings.
type RecommenderConfig struct {
	ParallelThreshold int `toml:"parallel_threshold"` // Corpus size that triggers parallel scoring
	MaxWorkers        int `toml:"max_workers"`        // Scoring goroutine cap (0 = auto)
	FuzzyCutoff       int `toml:"fuzzy_cutoff"`       // Suggestion match similarity, 0-100
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Scryfall: ScryfallConfig{
			BulkFile:  "",
			WatchFile: false,
		},
		Recommender: RecommenderConfig{
			ParallelThreshold: 500,
			MaxWorkers:        0,
			FuzzyCutoff:       85,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".mtgecorec")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultDatabasePath returns the database path used when the config
// leaves it empty.
func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mtgecorec", "cards.db"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from an explicit path, filling in
// defaults for a missing file.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config.withDefaults()
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config.withDefaults()
}

func (c *Config) withDefaults() (*Config, error) {
	if c.Database.Path == "" {
		path, err := defaultDatabasePath()
		if err != nil {
			return nil, err
		}
		c.Database.Path = path
	}
	return c, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Recommender.ParallelThreshold < 0 {
		return fmt.Errorf("parallel threshold cannot be negative: %d", c.Recommender.ParallelThreshold)
	}
	if c.Recommender.MaxWorkers < 0 {
		return fmt.Errorf("max workers cannot be negative: %d", c.Recommender.MaxWorkers)
	}
	if c.Recommender.FuzzyCutoff < 0 || c.Recommender.FuzzyCutoff > 100 {
		return fmt.Errorf("fuzzy cutoff must be in [0,100]: %d", c.Recommender.FuzzyCutoff)
	}
	if c.Scryfall.WatchFile && c.Scryfall.BulkFile == "" {
		return fmt.Errorf("watch_file requires bulk_file to be set")
	}
	return nil
}
