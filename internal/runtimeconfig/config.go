// Package runtimeconfig declares the configuration consumed by the wiki
// storage runtime. Paths are derived from one explicit data root handed to
// the constructors; there is no process-wide mutable state.
package runtimeconfig

import (
	"os"
	"path/filepath"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

// DefaultRetentionDays is how long trashed documents are held before a sweep
// may remove them.
const DefaultRetentionDays = 7

// Config captures every tunable of the storage runtime.
type Config struct {
	// DataDir is the root under which docs/ and trash/ live.
	DataDir string
	// PublicBasePath prefixes the URLs returned for stored assets.
	PublicBasePath string
	Retention      RetentionConfig
	Logging        LoggingConfig
}

// RetentionConfig controls the trash sweep.
type RetentionConfig struct {
	MaxAgeDays int
}

// LoggingConfig selects the go-logger output level and format.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the configuration used when the host supplies
// nothing: data under /data, assets published under /docs, 7-day retention.
func DefaultConfig() Config {
	return Config{
		DataDir:        "/data",
		PublicBasePath: "/docs",
		Retention:      RetentionConfig{MaxAgeDays: DefaultRetentionDays},
		Logging:        LoggingConfig{Level: "info", Format: "json"},
	}
}

// FromEnv loads a .env file when present and overlays environment variables
// on top of the defaults: DATA_DIR, PUBLIC_BASE_PATH, TRASH_RETENTION_DAYS,
// LOG_LEVEL, LOG_FORMAT.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PUBLIC_BASE_PATH"); v != "" {
		cfg.PublicBasePath = v
	}
	if v := os.Getenv("TRASH_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 {
			cfg.Retention.MaxAgeDays = days
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return cfg
}

// Validate reports configuration a runtime cannot start with.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.PublicBasePath, validation.Required),
		validation.Field(&c.Retention),
	)
}

// Validate keeps retention windows non-negative.
func (r RetentionConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MaxAgeDays, validation.Min(0)),
	)
}

// DocsDir returns the directory holding active documents.
func (c Config) DocsDir() string {
	return filepath.Join(c.DataDir, "docs")
}

// TrashDir returns the holding area for soft-deleted documents.
func (c Config) TrashDir() string {
	return filepath.Join(c.DataDir, "trash")
}
