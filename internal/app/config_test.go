package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/biolink/internal/app"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIOLINK_GEMINI_TIMEOUT", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := app.LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StateKey != "default" || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Gemini.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.Gemini.Timeout)
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yml := "db: /tmp/from-file.db\nlog:\n  level: debug\ngemini:\n  model: gemini-test\n  timeout: 5s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BIOLINK_LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := app.LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBPath != "/tmp/from-file.db" {
		t.Fatalf("expected db from file, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected env to override log level, got %q", cfg.LogLevel)
	}
	if cfg.Gemini.Model != "gemini-test" || cfg.Gemini.Timeout != 5*time.Second {
		t.Fatalf("unexpected gemini config: %+v", cfg.Gemini)
	}
	if cfg.Gemini.APIKey != "secret" {
		t.Fatalf("expected api key from GEMINI_API_KEY")
	}
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIOLINK_GEMINI_TIMEOUT", "soon")

	if _, err := app.LoadConfig(dir); err == nil {
		t.Fatalf("expected invalid timeout error")
	}
}
