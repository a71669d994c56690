package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOCFORGE_CONFIG", "DOCFORGE_LOG_LEVEL", "DOCFORGE_LOG_FORMAT",
		"DOCFORGE_PAGE_SIZE", "DOCFORGE_ORIENTATION", "DOCFORGE_QUALITY",
		"DOCFORGE_COMPRESSION", "DOCFORGE_MAX_FILE_SIZE", "DOCFORGE_OUTPUT_DIR",
		"DOCFORGE_METRICS_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.DefaultPageSize != "A4" || cfg.DefaultOrientation != "portrait" {
		t.Fatalf("unexpected page defaults: %q/%q", cfg.DefaultPageSize, cfg.DefaultOrientation)
	}
	if cfg.DefaultQuality != 90 {
		t.Fatalf("expected default quality 90, got %d", cfg.DefaultQuality)
	}
	if cfg.MaxFileSize != 50<<20 {
		t.Fatalf("expected 50MB max file size, got %d", cfg.MaxFileSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCFORGE_LOG_LEVEL", "debug")
	t.Setenv("DOCFORGE_QUALITY", "75")
	t.Setenv("DOCFORGE_MAX_FILE_SIZE", "1048576")
	t.Setenv("DOCFORGE_OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level override, got %q", cfg.LogLevel)
	}
	if cfg.DefaultQuality != 75 {
		t.Fatalf("expected quality 75, got %d", cfg.DefaultQuality)
	}
	if cfg.MaxFileSize != 1048576 {
		t.Fatalf("expected max file size override, got %d", cfg.MaxFileSize)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Fatalf("expected output dir override, got %q", cfg.OutputDir)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCFORGE_QUALITY", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultQuality != 90 {
		t.Fatalf("expected fallback quality 90, got %d", cfg.DefaultQuality)
	}
}

func TestLoadYAMLOverlayThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "docforge.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\ndefault_quality: 60\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DOCFORGE_CONFIG", path)
	t.Setenv("DOCFORGE_QUALITY", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected yaml log level, got %q", cfg.LogLevel)
	}
	// env wins over the file
	if cfg.DefaultQuality != 42 {
		t.Fatalf("expected env quality 42, got %d", cfg.DefaultQuality)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCFORGE_CONFIG", "/nonexistent/docforge.yaml")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
