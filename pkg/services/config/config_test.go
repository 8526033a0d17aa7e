package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// When
	cfg, err := LoadConfig("")

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected Port=9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected ShutdownTimeout=10s, got %s", cfg.Server.ShutdownTimeout)
	}
	if len(cfg.Workbook.Paths) != 0 {
		t.Errorf("expected no workbook paths, got %v", cfg.Workbook.Paths)
	}
	if cfg.History.Limit != 20 {
		t.Errorf("expected History.Limit=20, got %d", cfg.History.Limit)
	}
}

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "valid.yaml")
	content := `server:
  host: "0.0.0.0"
  port: "8080"
  shutdown_timeout: 5s
workbook:
  paths:
    - "Data/capbudg.xlsx"
    - "capbudg.csv"
  sheet: "Capital Budgeting"
  s3:
    location: "s3://finance/capbudg.xlsx"
    region: "eu-west-1"
  refresh_interval: 1m
history:
  db_path: "sheet-atlas.db"
log:
  level: "debug"`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("expected Addr=0.0.0.0:8080, got %s", cfg.Server.Addr())
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected ShutdownTimeout=5s, got %s", cfg.Server.ShutdownTimeout)
	}
	if len(cfg.Workbook.Paths) != 2 || cfg.Workbook.Paths[1] != "capbudg.csv" {
		t.Errorf("unexpected workbook paths %v", cfg.Workbook.Paths)
	}
	if cfg.Workbook.Sheet != "Capital Budgeting" {
		t.Errorf("expected Sheet=Capital Budgeting, got %s", cfg.Workbook.Sheet)
	}
	if cfg.Workbook.S3.Location != "s3://finance/capbudg.xlsx" {
		t.Errorf("unexpected s3 location %s", cfg.Workbook.S3.Location)
	}
	if cfg.Workbook.RefreshInterval != time.Minute {
		t.Errorf("expected RefreshInterval=1m, got %s", cfg.Workbook.RefreshInterval)
	}
	if cfg.History.DbPath != "sheet-atlas.db" {
		t.Errorf("expected DbPath=sheet-atlas.db, got %s", cfg.History.DbPath)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Log.Level)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	// Given
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SHEET_ATLAS_WORKBOOK_SHEET", "Budget")

	// When
	cfg, err := LoadConfig("")

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected Port=7070, got %s", cfg.Server.Port)
	}
	if cfg.Workbook.Sheet != "Budget" {
		t.Errorf("expected Sheet=Budget, got %s", cfg.Workbook.Sheet)
	}
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("server: host: bad: ["), 0o644); err != nil {
		t.Fatalf("failed to write bad config: %v", err)
	}

	// When
	_, err := LoadConfig(path)

	// Then
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{name: "hostname", host: "localhost", port: "9090", expected: "localhost:9090"},
		{name: "ipv4", host: "0.0.0.0", port: "8080", expected: "0.0.0.0:8080"},
		{name: "ipv6", host: "::1", port: "9090", expected: "[::1]:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When
			addr := ServerConfig{Host: tt.host, Port: tt.port}.Addr()

			// Then
			if addr != tt.expected {
				t.Errorf("expected Addr=%s, got %s", tt.expected, addr)
			}
		})
	}
}
