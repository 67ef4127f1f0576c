// Package config loads the rollcall configuration. Precedence, lowest
// to highest: built-in defaults, an optional YAML file, environment
// variables (with a .env file folded in first). Command-line flags sit
// above all of these and are applied by the CLI layer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file consulted when no explicit path is
// given. A missing default file is not an error.
const DefaultFile = "rollcall.yaml"

// Environment variable overrides.
const (
	EnvDBPath        = "ROLLCALL_DB_PATH"
	EnvDefaultMethod = "ROLLCALL_DEFAULT_METHOD"
	EnvBackupDir     = "ROLLCALL_BACKUP_DIR"
	EnvExportDir     = "ROLLCALL_EXPORT_DIR"
)

// Config is the effective application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Backup     BackupConfig     `yaml:"backup"`
	Export     ExportConfig     `yaml:"export"`
}

// DatabaseConfig locates the SQLite backing file.
type DatabaseConfig struct {
	// Path is the attendance database file. Created on first use.
	Path string `yaml:"path"`
}

// AttendanceConfig tunes the recorder.
type AttendanceConfig struct {
	// DefaultMethod is the verification method stamped on check-ins
	// that do not specify one.
	DefaultMethod string `yaml:"default_method"`
}

// BackupConfig controls backup placement and pruning.
type BackupConfig struct {
	// Dir receives timestamped backup files.
	Dir string `yaml:"dir"`

	// RetentionDays bounds how old a backup may grow before prune
	// removes it.
	RetentionDays int `yaml:"retention_days"`
}

// ExportConfig controls report export placement.
type ExportConfig struct {
	// Dir receives exported report files.
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database:   DatabaseConfig{Path: "attendance.db"},
		Attendance: AttendanceConfig{DefaultMethod: "id_pass"},
		Backup:     BackupConfig{Dir: "backups", RetentionDays: 30},
		Export:     ExportConfig{Dir: "exports"},
	}
}

// Load builds the effective configuration.
//
// When path is empty the default file is read if it exists; an
// explicit path that cannot be read is an error. A .env file in the
// working directory is folded into the environment first; variables
// already set win over .env values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	// Missing .env files are fine
	_ = godotenv.Load()
	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFile decodes the YAML file over cfg, so the file only overrides
// the fields it actually sets.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "datbase:" vs "database:")
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(cfg); err != nil {
		// An empty file decodes to EOF and means "no overrides"
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvDefaultMethod); v != "" {
		cfg.Attendance.DefaultMethod = v
	}
	if v := os.Getenv(EnvBackupDir); v != "" {
		cfg.Backup.Dir = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.Export.Dir = v
	}
}

// validate checks that required fields are present and sane.
func (c Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Attendance.DefaultMethod == "" {
		return fmt.Errorf("attendance.default_method is required")
	}
	if c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is required")
	}
	if c.Backup.RetentionDays < 0 {
		return fmt.Errorf("backup.retention_days must be non-negative")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}
	return nil
}
