package config

import (
	"log/slog"
	"strings"
	"testing"

	"rostercore/internal/blob"
	"rostercore/internal/core"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageDriver != "sqlite" || cfg.SQLitePath != "roster.db" {
		t.Fatalf("unexpected storage defaults %+v", cfg)
	}
	if cfg.BlobDriver != "fs" || cfg.TotalGroups != 1 || cfg.GroupCapacity != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.OTelEnabled || cfg.OTelEndpoint != "" || cfg.MetricsAddr != "" {
		t.Fatalf("unexpected observability defaults %+v", cfg)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", lvl)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ROSTER_STORAGE_DRIVER", "postgres")
	t.Setenv("ROSTER_POSTGRES_DSN", "postgres://db/roster")
	t.Setenv("ROSTER_BLOB_DRIVER", "s3")
	t.Setenv("ROSTER_BLOB_S3_BUCKET", "snaps")
	t.Setenv("ROSTER_BLOB_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("ROSTER_BLOB_S3_PATH_STYLE", "true")
	t.Setenv("ROSTER_TOTAL_GROUPS", "4")
	t.Setenv("ROSTER_GROUP_CAPACITY", "10")
	t.Setenv("ROSTER_LOG_LEVEL", "debug")
	t.Setenv("ROSTER_METRICS_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	st := cfg.Storage()
	if st.Driver != core.StoragePostgres || st.PostgresDSN != "postgres://db/roster" {
		t.Fatalf("unexpected storage config %+v", st)
	}
	bc := cfg.Blob()
	if bc.Driver != blob.DriverS3 || bc.S3.Bucket != "snaps" || !bc.S3.PathStyle || bc.S3.Endpoint != "http://minio:9000" || bc.S3.Region != "us-east-1" {
		t.Fatalf("unexpected blob config %+v", bc)
	}
	if cfg.TotalGroups != 4 || cfg.GroupCapacity != 10 || cfg.MetricsAddr != ":9090" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", lvl)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"parse", map[string]string{"ROSTER_TOTAL_GROUPS": "many"}, "parse env:"},
		{"storage", map[string]string{"ROSTER_STORAGE_DRIVER": "mongo"}, "ROSTER_STORAGE_DRIVER"},
		{"blob", map[string]string{"ROSTER_BLOB_DRIVER": "ftp"}, "ROSTER_BLOB_DRIVER"},
		{"bucket", map[string]string{"ROSTER_BLOB_DRIVER": "s3"}, "ROSTER_BLOB_S3_BUCKET"},
		{"groups", map[string]string{"ROSTER_TOTAL_GROUPS": "0"}, "ROSTER_TOTAL_GROUPS"},
		{"capacity", map[string]string{"ROSTER_GROUP_CAPACITY": "-1"}, "ROSTER_GROUP_CAPACITY"},
		{"level", map[string]string{"ROSTER_LOG_LEVEL": "loud"}, "ROSTER_LOG_LEVEL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}
}
