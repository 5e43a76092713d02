// Package config loads the roster binary's settings from ROSTER_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"rostercore/internal/blob"
	"rostercore/internal/core"
)

// Config is the full set of runtime settings.
type Config struct {
	StorageDriver string `env:"ROSTER_STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"ROSTER_SQLITE_PATH" envDefault:"roster.db"`
	PostgresDSN   string `env:"ROSTER_POSTGRES_DSN"`

	BlobDriver string `env:"ROSTER_BLOB_DRIVER" envDefault:"fs"`
	BlobFSRoot string `env:"ROSTER_BLOB_FS_ROOT" envDefault:"snapshots-data"`
	S3         S3

	TotalGroups   int `env:"ROSTER_TOTAL_GROUPS" envDefault:"1"`
	GroupCapacity int `env:"ROSTER_GROUP_CAPACITY"`

	MetricsAddr string `env:"ROSTER_METRICS_ADDR"`
	LogLevel    string `env:"ROSTER_LOG_LEVEL" envDefault:"info"`

	OTelEndpoint string `env:"ROSTER_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"ROSTER_OTEL_ENABLED" envDefault:"true"`
}

// S3 configures the S3 blob driver. Credentials fall back to the default AWS chain.
type S3 struct {
	Bucket          string `env:"ROSTER_BLOB_S3_BUCKET"`
	Region          string `env:"ROSTER_BLOB_S3_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ROSTER_BLOB_S3_ENDPOINT"`
	PathStyle       bool   `env:"ROSTER_BLOB_S3_PATH_STYLE"`
	AccessKeyID     string `env:"ROSTER_BLOB_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"ROSTER_BLOB_S3_SECRET_ACCESS_KEY"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerations and cross-field requirements.
func (c Config) Validate() error {
	switch core.StorageDriver(c.StorageDriver) {
	case core.StorageMemory, core.StorageSQLite, core.StoragePostgres:
	default:
		return fmt.Errorf("ROSTER_STORAGE_DRIVER: unknown driver %q", c.StorageDriver)
	}
	switch blob.Driver(c.BlobDriver) {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("ROSTER_BLOB_S3_BUCKET is required for the s3 blob driver")
		}
	default:
		return fmt.Errorf("ROSTER_BLOB_DRIVER: unknown driver %q", c.BlobDriver)
	}
	if c.TotalGroups < 1 {
		return fmt.Errorf("ROSTER_TOTAL_GROUPS must be at least 1, got %d", c.TotalGroups)
	}
	if c.GroupCapacity < 0 {
		return fmt.Errorf("ROSTER_GROUP_CAPACITY must not be negative, got %d", c.GroupCapacity)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Storage returns the persistence backend settings.
func (c Config) Storage() core.StorageConfig {
	return core.StorageConfig{
		Driver:      core.StorageDriver(c.StorageDriver),
		SQLitePath:  c.SQLitePath,
		PostgresDSN: c.PostgresDSN,
	}
}

// Blob returns the snapshot blob store settings.
func (c Config) Blob() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.BlobDriver),
		FSRoot: c.BlobFSRoot,
		S3: blob.S3Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			PathStyle:       c.S3.PathStyle,
		},
	}
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("ROSTER_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
