package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "taskpad.db"
	defaultSnapshotDir  = "snapshots"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	DatabasePath string         `yaml:"database_path"`
	Snapshot     SnapshotConfig `yaml:"snapshot"`
}

// SnapshotConfig configures the autosave exporter.
type SnapshotConfig struct {
	Dir     string `yaml:"dir"`
	Every   string `yaml:"every"`    // Go duration, e.g. 6h; empty disables
	DailyAt string `yaml:"daily_at"` // HH:MM, empty disables
}

// Load reads an optional YAML file, then applies environment overrides and
// defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Config{
		DatabasePath: defaultDatabasePath,
		Snapshot:     SnapshotConfig{Dir: defaultSnapshotDir},
	}

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return cfg, fmt.Errorf("decode config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env and defaults
		default:
			return cfg, fmt.Errorf("open config %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg)

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath
	}
	if cfg.Snapshot.Dir == "" {
		cfg.Snapshot.Dir = defaultSnapshotDir
	}

	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TASKPAD_DB")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAD_SNAPSHOT_DIR")); v != "" {
		cfg.Snapshot.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAD_SNAPSHOT_EVERY")); v != "" {
		cfg.Snapshot.Every = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAD_SNAPSHOT_AT")); v != "" {
		cfg.Snapshot.DailyAt = v
	}
}

// SnapshotInterval parses Snapshot.Every. Zero means interval autosave is
// disabled; a malformed or non-positive value also disables it.
func (c Config) SnapshotInterval() time.Duration {
	raw := strings.TrimSpace(c.Snapshot.Every)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
