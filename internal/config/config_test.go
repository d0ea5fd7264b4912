package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if !c.Database.AutoMigrate {
		t.Error("AutoMigrate should default to true")
	}
	if c.Recommender.ParallelThreshold != 500 {
		t.Errorf("ParallelThreshold = %d, want 500", c.Recommender.ParallelThreshold)
	}
	if c.Recommender.FuzzyCutoff != 85 {
		t.Errorf("FuzzyCutoff = %d, want 85", c.Recommender.FuzzyCutoff)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Recommender.ParallelThreshold != 500 {
		t.Errorf("ParallelThreshold = %d, want default 500", c.Recommender.ParallelThreshold)
	}
	if c.Database.Path == "" {
		t.Error("missing database path should be filled in")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
path = "/tmp/cards.db"
auto_migrate = false

[scryfall]
bulk_file = "/tmp/oracle-cards.json"
watch_file = true

[recommender]
parallel_threshold = 1000
max_workers = 2
fuzzy_cutoff = 90

[app]
debug_mode = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if c.Database.Path != "/tmp/cards.db" {
		t.Errorf("Database.Path = %q", c.Database.Path)
	}
	if c.Database.AutoMigrate {
		t.Error("AutoMigrate should be false")
	}
	if c.Recommender.ParallelThreshold != 1000 {
		t.Errorf("ParallelThreshold = %d", c.Recommender.ParallelThreshold)
	}
	if c.Recommender.MaxWorkers != 2 {
		t.Errorf("MaxWorkers = %d", c.Recommender.MaxWorkers)
	}
	if !c.App.DebugMode {
		t.Error("DebugMode should be true")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative threshold", func(c *Config) { c.Recommender.ParallelThreshold = -1 }, false},
		{"negative workers", func(c *Config) { c.Recommender.MaxWorkers = -2 }, false},
		{"cutoff too high", func(c *Config) { c.Recommender.FuzzyCutoff = 101 }, false},
		{"watch without file", func(c *Config) { c.Scryfall.WatchFile = true }, false},
		{"watch with file", func(c *Config) {
			c.Scryfall.WatchFile = true
			c.Scryfall.BulkFile = "/tmp/bulk.json"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() err = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
