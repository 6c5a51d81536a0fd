package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "data" || cfg.UI != "auto" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Seed != 0 {
		t.Fatalf("Seed = %d, want 0", cfg.Seed)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dundork.yaml")
	body := "data_dir: worlds/main\nseed: 42\nclass: fighter\nui: plain\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "worlds/main" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Seed != 42 {
		t.Fatalf("Seed = %d", cfg.Seed)
	}
	if cfg.Class != "fighter" || cfg.UI != "plain" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dundork.yaml")
	if err := os.WriteFile(path, []byte("seed: 42\nui: plain\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DUNDORK_SEED", "7")
	t.Setenv("DUNDORK_UI", "tui")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Fatalf("Seed = %d, want env override 7", cfg.Seed)
	}
	if cfg.UI != "tui" {
		t.Fatalf("UI = %q, want tui", cfg.UI)
	}
}

func TestInvalidUIModeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dundork.yaml")
	if err := os.WriteFile(path, []byte("ui: fancy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an invalid ui mode")
	}
}

func TestMalformedYAMLReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dundork.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
